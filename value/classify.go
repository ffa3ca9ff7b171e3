// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

package value

import (
	"fmt"
	"strconv"
)

// classifyNumber converts the text of a numeric literal, already validated
// by the scanner, into the matching value variant via f.
//
// An integer literal becomes an Int when it fits in int64, a Uint when it is
// non-negative and fits only in uint64, and a Float otherwise. A literal
// with a fractional part or exponent always becomes a Float. Classification
// depends only on the literal text, so a given literal maps to the same
// variant on every call.
func classifyNumber(text string, isInt bool, f Factory) (Value, error) {
	if isInt {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return f.Int(v)
		}
		if text[0] != '-' {
			if v, err := strconv.ParseUint(text, 10, 64); err == nil {
				return f.Uint(v)
			}
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// The scanner vouched for the shape of the literal, so the only way
		// to arrive here is a magnitude beyond the range of a float64.
		return nil, &DecodeError{Message: fmt.Sprintf("number %q out of range", text), err: err}
	}
	return f.Float(v)
}
