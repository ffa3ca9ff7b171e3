// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

package dynjson

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"go4.org/mem"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() mem.RO       // Returns a read-only view of the raw (undecoded) text
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Span() Span         // Returns the source span of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data or record the
// anchor's Span and consult the original input buffer.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc. The text of the key is
	// still quoted; the handler is responsible for unescaping key values if
	// the plain string is required (see dynjson.Unquote).
	BeginMember(loc Anchor) error

	// End the current object member giving the location and type of the token
	// that terminated the member (either Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token. String tokens are quoted.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// CommentHandler is an optional interface that a Handler may implement to
// handle comment tokens. If a handler implements this method and comments
// are enabled in the scanner, Comment will be called for each comment token
// that occurs in the input. If the handler does not provide this method,
// comments will be silently discarded.
type CommentHandler interface {
	// Process the line or block comment at the specified location.
	// Line comments include their leading "//" and trailing newline (if present).
	// Block comments include their leading "/*" and trailing "*/".
	Comment(loc Anchor)
}

// DefaultMaxDepth is the container nesting limit applied to a new Stream.
// Use SetMaxDepth to change it.
const DefaultMaxDepth = 200

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	sc     *Scanner
	tcomma bool // allow trailing commas in objects and arrays

	depth    int // current container nesting depth
	maxDepth int // depth limit; 0 means unlimited
}

// NewStream constructs a new Stream that consumes input from in.
func NewStream(in mem.RO) *Stream {
	return &Stream{sc: NewScanner(in), maxDepth: DefaultMaxDepth}
}

// AllowComments configures the scanner associated with s to report (true) or
// reject (false) comment tokens.
func (s *Stream) AllowComments(ok bool) { s.sc.AllowComments(ok) }

// AllowTrailingCommas configures the parser to allow (true) or reject
// (false) trailing commas in objects and arrays.
func (s *Stream) AllowTrailingCommas(ok bool) { s.tcomma = ok }

// SetMaxDepth sets the maximum container nesting depth the parser accepts
// before reporting a *SyntaxError. Values n ≤ 0 remove the limit entirely,
// leaving the parser bounded only by available stack.
func (s *Stream) SetMaxDepth(n int) { s.maxDepth = n }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an
// error occurs or the input is exhausted. In case of a syntax error, the
// returned error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	for {
		err := s.nextToken(h)
		if err == io.EOF {
			h.EndOfInput(s.sc)
			return nil
		} else if err != nil {
			s.syntaxError(err, "%v", err)
		}

		s.parseElement(h)
	}
}

// ParseOne parses a single value from the input stream and delivers events
// to h until the value is complete or an error occurs. If no further value
// is available from the input, ParseOne returns io.EOF. In case of a syntax
// error, the returned error has type [*SyntaxError].
func (s *Stream) ParseOne(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if err := s.nextToken(h); err == io.EOF {
		h.EndOfInput(s.sc)
		return err
	} else if err != nil {
		s.syntaxError(err, "%v", err)
	}
	s.parseElement(h)
	return nil
}

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (s *Stream) parseElement(h Handler) {
	switch tok := s.sc.Token(); tok {
	case LBrace:
		s.enter()
		s.checkError(h.BeginObject(s.sc))
		s.parseMembers(h)
		s.require(RBrace)
		s.checkError(h.EndObject(s.sc))
		s.depth--
	case LSquare:
		s.enter()
		s.checkError(h.BeginArray(s.sc))
		s.parseElements(h)
		s.require(RSquare)
		s.checkError(h.EndArray(s.sc))
		s.depth--
	default:
		if tok.isScalar() {
			s.checkError(h.Value(s.sc))
		} else {
			s.syntaxError(nil, "unexpected %v", tok)
		}
	}
}

// enter records entry into a container and enforces the depth ceiling.
func (s *Stream) enter() {
	s.depth++
	if s.maxDepth > 0 && s.depth > s.maxDepth {
		s.syntaxError(nil, "exceeds maximum nesting depth (%d)", s.maxDepth)
	}
}

// parseMembers consumes zero or more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (s *Stream) parseMembers(h Handler) {
	if tok := s.advance(h, RBrace, String); tok == RBrace {
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		s.checkError(h.BeginMember(s.sc))
		s.advance(h, Colon)
		s.advance(h)
		s.parseElement(h)

		// Check whether we have more members (",") or are done ("}").
		tok := s.advance(h, RBrace, Comma)
		s.checkError(h.EndMember(s.sc))
		if tok == RBrace {
			return // end of object
		}
		if s.tcomma {
			// If trailing commas are allowed and the next token is a close
			// brace, consider this a valid end of the object. Otherwise, it
			// must be a key for a subsequent member.
			if s.advance(h, String, RBrace) == RBrace {
				return // end of object with trailing comma
			}
		} else {
			s.advance(h, String) // advance to the next key
		}
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (s *Stream) parseElements(h Handler) {
	if tok := s.advance(h); tok == RSquare {
		return // end of array
	}
	s.parseElement(h)
	for {
		if tok := s.advance(h, RSquare, Comma); tok == RSquare {
			return // end of array
		}

		// If trailing commas are allowed and the next token is a close
		// bracket, consider this a valid end of the array; otherwise it will
		// fail on the next element.
		if next := s.advance(h); s.tcomma && next == RSquare {
			return // end of array with trailing comma
		}
		s.parseElement(h)
	}
}

func (s *Stream) nextToken(h Handler) error {
	for s.sc.Next() {
		// If we see a comment token, pass it to the handler if it implements
		// CommentHandler. Either way, discard the comment and fetch the next
		// available token for the rest of the parser.
		if tok := s.sc.Token(); tok == LineComment || tok == BlockComment {
			if ch, ok := h.(CommentHandler); ok {
				ch.Comment(s.sc)
			}
			continue // skip to the next token for the parser
		}
		return nil
	}
	return cmp.Or(s.sc.Err(), io.EOF)
}

func (s *Stream) advance(h Handler, tokens ...Token) Token {
	if err := s.nextToken(h); err != nil {
		s.syntaxError(err, "%v", wantLabel(tokens, fmt.Sprintf("error: %v", err)))
	}
	tok := s.sc.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		s.syntaxError(nil, "%v", wantLabel(tokens, tok))
	}
	return tok
}

func (s *Stream) require(token Token) {
	if tok := s.sc.Token(); tok != token {
		s.syntaxError(nil, "expected %v, got %v", token, tok)
	}
}

func (s *Stream) syntaxError(err error, msg string, args ...any) {
	loc := s.sc.Location()
	panic(&SyntaxError{
		Location: loc.First,
		Offset:   loc.Pos,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// wantLabel makes a human-readable summary string for the given expected
// token types and the token or error actually seen.
func wantLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("expected more input, got %v", got)
	}
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	exp := parts[len(parts)-1]
	if n := len(parts); n > 1 {
		exp = strings.Join(parts[:n-1], ", ") + " or " + exp
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// SyntaxError is the concrete type of errors reported by the stream parser.
type SyntaxError struct {
	Location LineCol // line and column where the error occurred
	Offset   int     // byte offset of the error in the input
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
