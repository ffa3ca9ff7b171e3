// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

// Package value defines a dynamic in-memory representation of JSON values,
// and a decoder that constructs values from JSON source text.
//
// A JSON document decodes into a tree of Value implementations: Null, Bool,
// Int, Uint, Float, String, Array, and Object. Arrays preserve document
// order; objects preserve the insertion order of their keys. Integer
// literals decode as Int when they fit in int64, as Uint when they are
// non-negative and fit only in uint64, and as Float otherwise.
//
// Use Decode to convert source text into a Value:
//
//	v, err := value.Decode(`{"name": "A", "count": 25}`)
//	if err != nil {
//	   log.Fatalf("Decode: %v", err)
//	}
//	obj := v.(value.Object)
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmercer/dynjson"
)

// A Value is a dynamic JSON value. The concrete types produced by the
// decoder are Null, Bool, Int, Uint, Float, String, Array, and Object.
type Value interface {
	// JSON encodes the value as compact JSON text.
	JSON() string

	// String returns a descriptive label for the value.
	String() string
}

// Null is the JSON null value.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) JSON() string   { return "null" }
func (nullValue) String() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

// Value reports the truth value of b.
func (b Bool) Value() bool { return bool(b) }

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) String() string { return b.JSON() }

// An Int is a signed 64-bit integer value.
type Int int64

// Int64 returns the value of z as an int64.
func (z Int) Int64() int64 { return int64(z) }

func (z Int) JSON() string   { return strconv.FormatInt(int64(z), 10) }
func (z Int) String() string { return z.JSON() }

// A Uint is an unsigned 64-bit integer value. The decoder produces a Uint
// only for non-negative integer literals too large for an Int.
type Uint uint64

// Uint64 returns the value of z as a uint64.
func (z Uint) Uint64() uint64 { return uint64(z) }

func (z Uint) JSON() string   { return strconv.FormatUint(uint64(z), 10) }
func (z Uint) String() string { return z.JSON() }

// A Float is a 64-bit floating-point value.
type Float float64

// Float64 returns the value of f as a float64.
func (f Float) Float64() float64 { return float64(f) }

func (f Float) JSON() string   { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f Float) String() string { return f.JSON() }

// A String is a string value. Its content is the plain (unescaped) text.
type String string

func (s String) JSON() string   { return dynjson.Quote(string(s)) }
func (s String) String() string { return strconv.Quote(string(s)) }

// An Array is a sequence of values in document order.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (a Array) JSON() string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(a[0].JSON())
	for _, elt := range a[1:] {
		sb.WriteByte(',')
		sb.WriteString(elt.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (m *Member) JSON() string {
	return dynjson.Quote(m.Key) + ":" + m.Value.JSON()
}

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// An Object is a collection of key-value members. Members are kept in the
// order their keys first appeared in the input.
type Object []*Member

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	if i := o.IndexKey(key); i >= 0 {
		return o[i]
	}
	return nil
}

// IndexKey returns the index of the first member of o with the given key,
// or -1.
func (o Object) IndexKey(key string) int {
	for i, m := range o {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

func (o Object) JSON() string {
	if len(o) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(o[0].JSON())
	for _, m := range o[1:] {
		sb.WriteByte(',')
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }
