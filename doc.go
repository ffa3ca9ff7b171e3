// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

// Package dynjson implements a JSON scanner and an event-driven stream
// parser. The companion package value consumes the parser's events to build
// dynamic JSON values in memory.
//
// # Scanning
//
// The Scanner type implements a lexical scanner over an in-memory buffer.
// Construct a scanner from a read-only view of the input and call its Next
// method to iterate over the stream:
//
//	s := dynjson.NewScanner(mem.S(input))
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//	if s.Err() != nil {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// Next returns false when the input is exhausted or an error occurs; Err
// reports the error, or nil if the input was fully consumed. Because the
// scanner works over an in-memory buffer, the text of each token is a view
// of the input and costs nothing to obtain.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser. The parser works
// by calling methods on a Handler value to report the structure of the
// input. In case of error, parsing is terminated and an error of concrete
// type *dynjson.SyntaxError is returned.
//
// Construct a Stream over the input, and call its Parse method. Parse
// returns nil if the input was fully processed without error. If a Handler
// method reports an error, parsing stops and that error is returned.
//
//	s := dynjson.NewStream(mem.S(input))
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available:
//
//	if err := s.ParseOne(handler); err == io.EOF {
//	   log.Print("No more input")
//	} else if err != nil {
//	   log.Printf("ParseOne failed: %v", err)
//	}
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve
// location and type information. The Anchor passed to a handler method is
// only valid for the duration of that method call; the handler must copy any
// data it needs to retain beyond the lifetime of the call, or record the
// anchor's Span and consult the original input.
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, or that a SyntaxError is reported. It also enforces a ceiling on
// nesting depth, so that a handler driven from untrusted input cannot be
// made to recurse without bound; see Stream.SetMaxDepth.
package dynjson
