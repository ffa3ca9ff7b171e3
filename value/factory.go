// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

package value

// A Factory constructs the representation of each decoded value. The
// decoder calls exactly one factory method per value in the input, and a
// container method only after all the container's children have been built.
//
// An error reported by a factory method is treated as a failure of the
// environment rather than a defect in the document: the decoder aborts and
// returns the error to the caller unaltered, not wrapped in a DecodeError.
//
// The zero Decoder uses a default factory that produces the types defined
// in this package and never fails. Provide a custom Factory to materialize
// values in another representation, for example the object model of an
// embedded interpreter.
type Factory interface {
	Null() (Value, error)
	Bool(v bool) (Value, error)
	Int(v int64) (Value, error)
	Uint(v uint64) (Value, error)
	Float(v float64) (Value, error)

	// String constructs a string value from the decoded text. The argument
	// may share storage with the input passed to Decode; an implementation
	// that retains it beyond the lifetime of the input must copy.
	String(s string) (Value, error)

	// Array constructs an array from elts, which holds the fully-built
	// elements in document order. The factory takes ownership of the slice.
	Array(elts []Value) (Value, error)

	// Object constructs an object from members, which holds the fully-built
	// members in key insertion order with duplicates already resolved. The
	// factory takes ownership of the slice.
	Object(members []*Member) (Value, error)
}

// stdFactory is the default Factory. It produces the value types defined in
// this package and never reports an error.
type stdFactory struct{}

func (stdFactory) Null() (Value, error)           { return Null, nil }
func (stdFactory) Bool(v bool) (Value, error)     { return Bool(v), nil }
func (stdFactory) Int(v int64) (Value, error)     { return Int(v), nil }
func (stdFactory) Uint(v uint64) (Value, error)   { return Uint(v), nil }
func (stdFactory) Float(v float64) (Value, error) { return Float(v), nil }
func (stdFactory) String(s string) (Value, error) { return String(s), nil }

func (stdFactory) Array(elts []Value) (Value, error) { return Array(elts), nil }

func (stdFactory) Object(members []*Member) (Value, error) { return Object(members), nil }
