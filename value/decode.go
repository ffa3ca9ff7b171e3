// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

package value

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jmercer/dynjson"

	"go4.org/mem"
)

// ErrExtraInput is reported when input remains after the first value.
var ErrExtraInput = errors.New("extra input after value")

// A DecodeError reports a defect in a JSON document: a syntax error, a
// malformed object key, or data remaining after the first value. It is the
// only error type Decode returns for bad input; failures of a custom
// Factory pass through unaltered.
//
// When the position of the defect is known, Pos, Line, and Column locate it
// in the input. Name is the name of the source, if any; decoding from a
// plain string leaves it empty.
type DecodeError struct {
	Message string
	Name    string // source name, or "" if none
	Pos     int    // byte offset of the defect, 0-based
	Line    int    // line of the defect, 1-based, or 0 if unknown
	Column  int    // byte offset of the defect in its line, 0-based

	err error
}

// Error satisfies the error interface.
func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// Unwrap supports error wrapping.
func (e *DecodeError) Unwrap() error { return e.err }

// A Decoder converts JSON source text into a Value. The zero value is ready
// to use and decodes standard JSON into the types of this package.
type Decoder struct {
	// Factory constructs the decoded values. If nil, the decoder produces
	// the value types defined in this package.
	Factory Factory

	// AllowComments permits C++ style comments in the input.
	AllowComments bool

	// AllowTrailingCommas permits a comma before the closing bracket of an
	// object or array.
	AllowTrailingCommas bool

	// MaxDepth overrides the container nesting limit. Zero applies
	// dynjson.DefaultMaxDepth; a negative value removes the limit.
	MaxDepth int
}

// Decode converts input into a Value using the default Decoder. See
// Decoder.Decode for the semantics.
func Decode(input string) (Value, error) { return Decoder{}.Decode(input) }

// Decode converts input into a Value.
//
// The input must contain exactly one JSON value, optionally surrounded by
// whitespace; anything further is reported as a DecodeError wrapping
// ErrExtraInput. Any syntactic defect is likewise reported as a
// DecodeError, and no partial value is returned. An error from a custom
// Factory aborts decoding and is returned unaltered.
//
// String values decode without copying where the source permits: a string
// literal containing no escape sequences shares the storage of input.
func (d Decoder) Decode(input string) (Value, error) {
	st := dynjson.NewStream(mem.S(input))
	st.AllowComments(d.AllowComments)
	st.AllowTrailingCommas(d.AllowTrailingCommas)
	if d.MaxDepth != 0 {
		st.SetMaxDepth(d.MaxDepth)
	}

	f := d.Factory
	if f == nil {
		f = stdFactory{}
	}
	b := &builder{src: input, vf: f}
	if err := st.ParseOne(b); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DecodeError{Message: "unexpected end of input", Pos: len(input), err: err}
		}
		return nil, wrapDecode(err)
	}
	if len(b.stk) != 1 {
		return nil, &DecodeError{Message: "incomplete value"}
	}
	root := b.stk[0]

	// The value is complete; verify that nothing but whitespace (and, if
	// enabled, comments) remains.
	if err := st.ParseOne(discard{}); err == nil {
		return nil, &DecodeError{Message: "extra input after value", err: ErrExtraInput}
	} else if !errors.Is(err, io.EOF) {
		de := &DecodeError{Message: "extra input after value", err: errors.Join(ErrExtraInput, err)}
		var se *dynjson.SyntaxError
		if errors.As(err, &se) {
			de.Pos, de.Line, de.Column = se.Offset, se.Location.Line, se.Location.Column
		}
		return nil, de
	}
	return root, nil
}

// wrapDecode converts a parse or builder failure into a *DecodeError.
// Errors of other provenance, notably Factory failures, pass through.
func wrapDecode(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	var se *dynjson.SyntaxError
	if errors.As(err, &se) {
		return &DecodeError{
			Message: se.Message,
			Pos:     se.Offset,
			Line:    se.Location.Line,
			Column:  se.Location.Column,
			err:     err,
		}
	}
	return err
}

// A builder implements the dynjson.Handler interface to construct values
// from parser events. Completed values accumulate on an explicit stack;
// array elements and object members reduce into their container when the
// container's end event arrives, so the nesting depth of the input costs
// heap rather than call stack.
type builder struct {
	src string // the input text, for zero-copy string slicing
	vf  Factory
	stk []Value
}

// Stack markers. These never appear in a completed tree, and no method of
// their embedded Value is ever called.
type (
	objectStub struct{ Value }
	arrayStub  struct{ Value }

	memberStub struct {
		Value
		key string
		val Value
	}
)

func (b *builder) push(v Value) { b.stk = append(b.stk, v) }

// raw returns the undecoded text of the token at loc, shared with the
// input buffer.
func (b *builder) raw(loc dynjson.Anchor) string {
	sp := loc.Span()
	return b.src[sp.Pos:sp.End]
}

// decodeString decodes the quoted string token at loc. When the text has no
// escape sequences its storage is borrowed from the input; otherwise a
// fresh copy holds the unescaped content.
func (b *builder) decodeString(loc dynjson.Anchor) (string, error) {
	body := b.raw(loc)
	body = body[1 : len(body)-1] // trim the quotation marks
	if strings.IndexByte(body, '\\') < 0 {
		return body, nil
	}
	dec, err := dynjson.Unquote(b.raw(loc))
	if err != nil {
		return "", &DecodeError{Message: err.Error(), err: err}
	}
	return dec, nil
}

func (b *builder) BeginObject(loc dynjson.Anchor) error {
	b.push(&objectStub{})
	return nil
}

func (b *builder) EndObject(loc dynjson.Anchor) error {
	for i := len(b.stk) - 1; i >= 0; i-- {
		if _, ok := b.stk[i].(*objectStub); !ok {
			continue
		}
		members := make(Object, 0, len(b.stk)-i-1)
		for _, e := range b.stk[i+1:] {
			m := e.(*memberStub)
			if j := members.IndexKey(m.key); j >= 0 {
				members[j].Value = m.val // duplicate key: last write wins
			} else {
				members = append(members, &Member{Key: m.key, Value: m.val})
			}
		}
		obj, err := b.vf.Object(members)
		if err != nil {
			return err
		}
		b.stk = b.stk[:i+1]
		b.stk[i] = obj
		return nil
	}
	panic("unbalanced EndObject")
}

func (b *builder) BeginArray(loc dynjson.Anchor) error {
	b.push(&arrayStub{})
	return nil
}

func (b *builder) EndArray(loc dynjson.Anchor) error {
	for i := len(b.stk) - 1; i >= 0; i-- {
		if _, ok := b.stk[i].(*arrayStub); !ok {
			continue
		}
		elts := make([]Value, len(b.stk)-i-1)
		copy(elts, b.stk[i+1:])
		arr, err := b.vf.Array(elts)
		if err != nil {
			return err
		}
		b.stk = b.stk[:i+1]
		b.stk[i] = arr
		return nil
	}
	panic("unbalanced EndArray")
}

func (b *builder) BeginMember(loc dynjson.Anchor) error {
	// The grammar guarantees keys are strings, so this check is vacuous for
	// input arriving through the stream parser. It is kept so that the
	// builder does not depend on that guarantee for its own consistency.
	if loc.Token() != dynjson.String {
		return &DecodeError{Message: fmt.Sprintf("object key is %v, not a string", loc.Token())}
	}
	key, err := b.decodeString(loc)
	if err != nil {
		return err
	}
	b.push(&memberStub{key: key})
	return nil
}

func (b *builder) EndMember(loc dynjson.Anchor) error {
	// Stack: ... [member-stub] [value]
	n := len(b.stk)
	m := b.stk[n-2].(*memberStub)
	m.val = b.stk[n-1]
	b.stk = b.stk[:n-1]
	return nil
}

func (b *builder) Value(loc dynjson.Anchor) error {
	var v Value
	var err error
	switch tok := loc.Token(); tok {
	case dynjson.Null:
		v, err = b.vf.Null()
	case dynjson.True:
		v, err = b.vf.Bool(true)
	case dynjson.False:
		v, err = b.vf.Bool(false)
	case dynjson.Integer:
		v, err = classifyNumber(b.raw(loc), true, b.vf)
	case dynjson.Number:
		v, err = classifyNumber(b.raw(loc), false, b.vf)
	case dynjson.String:
		var s string
		if s, err = b.decodeString(loc); err == nil {
			v, err = b.vf.String(s)
		}
	default:
		return &DecodeError{Message: fmt.Sprintf("unexpected %v", tok)}
	}
	if err != nil {
		return err
	}
	b.push(v)
	return nil
}

func (b *builder) EndOfInput(loc dynjson.Anchor) {}

// discard is a Handler that ignores every event. It is used to probe for
// input remaining after the first value.
type discard struct{}

func (discard) BeginObject(dynjson.Anchor) error { return nil }
func (discard) EndObject(dynjson.Anchor) error   { return nil }
func (discard) BeginArray(dynjson.Anchor) error  { return nil }
func (discard) EndArray(dynjson.Anchor) error    { return nil }
func (discard) BeginMember(dynjson.Anchor) error { return nil }
func (discard) EndMember(dynjson.Anchor) error   { return nil }
func (discard) Value(dynjson.Anchor) error       { return nil }
func (discard) EndOfInput(dynjson.Anchor)        {}
