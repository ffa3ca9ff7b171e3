// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

package dynjson

import (
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// A Scanner reads lexical tokens from an in-memory input buffer. Each call
// to Next advances the scanner to the next token, or reports an error.
//
// Because the input is fully in memory, the scanner does not copy token
// contents: Text returns a read-only view into the original buffer.
type Scanner struct {
	in  mem.RO
	tok Token
	err error

	comments bool // allow comments

	pos, end int // start and end offsets of the current token

	line, lstart int // current line (0-based) and the offset of its first byte
	tline, tcol  int // line and column at the start of the current token
}

// NewScanner constructs a new lexical scanner that consumes input from in.
func NewScanner(in mem.RO) *Scanner { return &Scanner{in: in} }

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. Comments are a non-standard extension of the JSON spec.
// If enabled, C++ style block comments (/* ... */) and line comments
// (// ...) are recognized and emitted as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input. It returns false when the
// input is exhausted or an error occurs; in the latter case Err reports the
// error.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	s.tok = Invalid
	s.skipSpace()
	s.pos = s.end
	s.tline, s.tcol = s.line, s.end-s.lstart
	if s.end >= s.in.Len() {
		return false
	}

	c := s.in.At(s.end)
	if t, ok := selfDelim(c); ok {
		s.end++
		s.tok = t
		return true
	}
	switch {
	case c == '"':
		return s.scanString()
	case c == '-' || isDigit(c):
		return s.scanNumber()
	case c == '/' && s.comments:
		return s.scanComment()
	case c == 't':
		return s.scanWord(True, wordTrue)
	case c == 'f':
		return s.scanWord(False, wordFalse)
	case c == 'n':
		return s.scanWord(Null, wordNull)
	default:
		return s.failf("unexpected %q", c)
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error that terminated scanning, or nil if the input was
// consumed completely.
func (s *Scanner) Err() error { return s.err }

// Text returns a read-only view of the undecoded text of the current token.
// The view remains valid as long as the input buffer does.
func (s *Scanner) Text() mem.RO { return s.view(s.pos, s.end) }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return mem.Append(nil, s.Text()) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.tline + 1, Column: s.tcol},
		Last:  LineCol{Line: s.line + 1, Column: s.end - s.lstart},
	}
}

// skipSpace discards whitespace, keeping the line accounting current.
func (s *Scanner) skipSpace() {
	for s.end < s.in.Len() {
		switch s.in.At(s.end) {
		case ' ', '\t', '\r':
			s.end++
		case '\n':
			s.end++
			s.line++
			s.lstart = s.end
		default:
			return
		}
	}
}

func (s *Scanner) scanString() bool {
	i := s.end + 1 // skip the open quote
	for i < s.in.Len() {
		c := s.in.At(i)
		switch {
		case c == '"':
			s.end = i + 1
			s.tok = String
			return true
		case c == '\\':
			n := s.scanEscape(i)
			if n < 0 {
				return false
			}
			i = n
		case c < ' ':
			s.end = i
			return s.failf("unescaped control %q", c)
		case c < utf8.RuneSelf:
			i++
		default:
			r, n := mem.DecodeRune(s.in.SliceFrom(i))
			if r == utf8.RuneError && n <= 1 {
				s.end = i
				return s.failf("invalid UTF-8 byte %#x", c)
			}
			i += n
		}
	}
	s.end = i
	return s.failf("unterminated string")
}

// scanEscape verifies the backslash escape beginning at offset i and returns
// the offset just past it, or -1 if the escape is invalid.
func (s *Scanner) scanEscape(i int) int {
	i++
	if i >= s.in.Len() {
		s.end = i
		s.failf("incomplete escape sequence")
		return -1
	}
	c := s.in.At(i)
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return i + 1
	case 'u':
		for j := i + 1; j <= i+4; j++ {
			if j >= s.in.Len() || !isHexDigit(s.in.At(j)) {
				s.end = j
				s.failf("invalid Unicode escape")
				return -1
			}
		}
		return i + 5
	default:
		s.end = i
		s.failf("invalid %q after escape", c)
		return -1
	}
}

func (s *Scanner) scanNumber() bool {
	i := s.end
	if s.in.At(i) == '-' {
		i++
		if i >= s.in.Len() || !isDigit(s.in.At(i)) {
			s.end = i
			return s.failf("no digits after minus sign")
		}
	}

	// Consume the integer part. There is at least one digit.
	first := i
	for i < s.in.Len() && isDigit(s.in.At(i)) {
		i++
	}

	// Check for extra leading zeroes, which are disallowed by the JSON spec.
	// That is: 0.12 is OK, 01.2 is not.
	if s.in.At(first) == '0' && i > first+1 {
		s.end = first + 1
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if i < s.in.Len() && s.in.At(i) == '.' {
		i++
		nd := 0
		for i < s.in.Len() && isDigit(s.in.At(i)) {
			i++
			nd++
		}
		if nd == 0 {
			s.end = i
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}

	// If an exponent follows, consume it.
	if i < s.in.Len() && (s.in.At(i) == 'e' || s.in.At(i) == 'E') {
		i++
		if i < s.in.Len() && (s.in.At(i) == '+' || s.in.At(i) == '-') {
			i++
		}
		nd := 0
		for i < s.in.Len() && isDigit(s.in.At(i)) {
			i++
			nd++
		}
		if nd == 0 {
			s.end = i
			return s.failf("missing exponent digits")
		}
		s.tok = Number
	}

	s.end = i
	return true
}

func (s *Scanner) scanComment() bool {
	i := s.end + 1
	if i >= s.in.Len() {
		s.end = i
		return s.failf("incomplete comment")
	}
	switch s.in.At(i) {
	case '/': // line comment, through the next LF (if any)
		for i++; i < s.in.Len(); i++ {
			if s.in.At(i) == '\n' {
				i++
				s.line++
				s.lstart = i
				break
			}
		}
		s.end = i
		s.tok = LineComment
		return true

	case '*': // block comment
		for i++; i+1 < s.in.Len(); i++ {
			switch s.in.At(i) {
			case '\n':
				s.line++
				s.lstart = i + 1
			case '*':
				if s.in.At(i+1) == '/' {
					s.end = i + 2
					s.tok = BlockComment
					return true
				}
			}
		}
		s.end = s.in.Len()
		return s.failf("unterminated block comment")

	default:
		s.end = i
		return s.failf("invalid %q in comment", s.in.At(i))
	}
}

func (s *Scanner) scanWord(tok Token, want mem.RO) bool {
	n := s.end
	for n < s.in.Len() && isWordByte(s.in.At(n)) {
		n++
	}
	got := s.view(s.end, n)
	if !got.Equal(want) {
		s.end = n
		return s.failf("unknown constant %q", got.StringCopy())
	}
	s.end = n
	s.tok = tok
	return true
}

func (s *Scanner) view(pos, end int) mem.RO { return s.in.SliceFrom(pos).SliceTo(end - pos) }

func (s *Scanner) failf(msg string, args ...any) bool {
	s.err = posError{pos: s.end, err: fmt.Errorf(msg, args...)}
	return false
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

var (
	wordTrue  = mem.S("true")
	wordFalse = mem.S("false")
	wordNull  = mem.S("null")
)

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(c byte) (Token, bool) {
	for i, d := range []byte("{}[],:") {
		if c == d {
			return self[i], true
		}
	}
	return Invalid, false
}

func isDigit(c byte) bool    { return '0' <= c && c <= '9' }
func isWordByte(c byte) bool { return c >= 'a' && c <= 'z' }

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
