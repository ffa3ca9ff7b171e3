// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

package dynjson_test

import (
	"testing"

	"github.com/jmercer/dynjson"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
		{"n\u00e9e Smith", "\"n\u00e9e Smith\""},

		// The replacement rune and the JS line separators are escaped so the
		// output survives hostile transcoding.
		{"\ufffd", `"\ufffd"`},
		{"    \ufffd", `"    \ufffd"`},
		{"a\u2028b\u2029c", `"a\u2028b\u2029c"`},
	}
	for _, test := range tests {
		got := dynjson.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                              // missing quotes
		{`"missing quote`, ``, true},                // missing quotes
		{`missing quote"`, ``, true},                // missing quotes
		{`""`, ``, false},                           // ok
		{`"ok go"`, "ok go", false},                 // ok
		{`"abc\ndef"`, "abc\ndef", false},         // C escapes
		{`"\tabc\n"`, "\tabc\n", false},         // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false}, // C escapes
		{`"a \u0026 b"`, "a & b", false},           // short Unicode escape
		{`"\`, ``, true},                           // incomplete escape
		{`"\u"`, ``, true},                         // incomplete Unicode escape
		{`"\u00"`, ``, true},                       // incomplete Unicode escape
		{`"\u00x9"`, "\ufffd", false},             // invalid Unicode escape
		{`"\u019 "`, "\ufffd", false},             // invalid Unicode escape
		{`"a\"b"`, `a"b`, false},                   // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},       // ok

		// Surrogate pairs combine into a single rune.
		{`"\ud83d\ude00"`, "\U0001f600", false},
		{`"x\ud834\udd1ey"`, "x\U0001d11ey", false},

		// Lone or misordered surrogates decode as replacement runes.
		{`"\ud83d"`, "\ufffd", false},
		{`"\ud83d "`, "\ufffd ", false},
		{`"\ude00\ud83d"`, "\ufffd\ufffd", false},
	}

	for _, test := range tests {
		got, err := dynjson.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if got != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}
