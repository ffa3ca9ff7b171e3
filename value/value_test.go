// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

package value_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"github.com/jmercer/dynjson/value"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		input value.Value
		want  string
	}{
		{value.Null, "null"},

		{value.Bool(false), "false"},
		{value.Bool(true), "true"},

		{value.String(""), `""`},
		{value.String("a \t b"), `"a \t b"`},
		{value.String(`say "what"`), `"say \"what\""`},

		{value.Int(0), `0`},
		{value.Int(15), `15`},
		{value.Int(-25), `-25`},

		{value.Uint(18446744073709551615), `18446744073709551615`},

		{value.Float(-0.00239), `-0.00239`},
		{value.Float(1e10), `1e+10`},

		{value.Array{}, `[]`},
		{value.Array{
			value.Bool(false),
		}, `[false]`},
		{value.Array{
			value.Bool(true),
			value.Int(199),
		}, `[true,199]`},

		{value.Object{}, `{}`},
		{value.Object{
			{Key: "happy", Value: value.Bool(true)},
		}, `{"happy":true}`},
		{value.Object{
			{Key: "happy", Value: value.Bool(true)},
			{Key: "sad", Value: value.Array{value.Null, value.Float(0.5)}},
		}, `{"happy":true,"sad":[null,0.5]}`},
	}
	for _, test := range tests {
		if got := test.input.JSON(); got != test.want {
			t.Errorf("JSON(%+v): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestObject(t *testing.T) {
	obj := value.Object{
		{Key: "b", Value: value.Int(1)},
		{Key: "a", Value: value.Int(2)},
		{Key: "b", Value: value.Int(3)}, // constructed by hand; Find sees the first
	}

	if got := obj.Len(); got != 3 {
		t.Errorf("Len: got %d, want 3", got)
	}
	if got := obj.IndexKey("a"); got != 1 {
		t.Errorf(`IndexKey("a"): got %d, want 1`, got)
	}
	if got := obj.IndexKey("nonesuch"); got != -1 {
		t.Errorf(`IndexKey("nonesuch"): got %d, want -1`, got)
	}
	if m := obj.Find("b"); m == nil {
		t.Error(`Find("b"): not found`)
	} else if m.Value != value.Int(1) {
		t.Errorf(`Find("b").Value: got %v, want 1`, m.Value)
	}
	if m := obj.Find("nonesuch"); m != nil {
		t.Errorf(`Find("nonesuch"): got %v, want nil`, m)
	}
	if diff := cmp.Diff([]string{"b", "a", "b"}, obj.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
}

func TestFrom(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, `null`},
		{true, `true`},
		{false, `false`},
		{"pudding", `"pudding"`},
		{17, `17`},
		{int16(-255), `-255`},
		{uint32(64000), `64000`},
		{uint64(1 << 63), `9223372036854775808`},
		{uint64(25), `25`},
		{3.5, `3.5`},
		{value.Int(12), `12`},
		{[]any{1, "two", nil}, `[1,"two",null]`},
		{[]value.Value{value.Bool(true)}, `[true]`},
		{map[string]any{"z": 1, "a": []any{true}}, `{"a":[true],"z":1}`}, // map keys sort
	}
	for _, test := range tests {
		if got := value.From(test.input).JSON(); got != test.want {
			t.Errorf("From(%+v): got %#q, want %#q", test.input, got, test.want)
		}
	}

	t.Run("Invalid", func(t *testing.T) {
		mtest.MustPanic(t, func() { value.From([]bool{true}) })
		mtest.MustPanic(t, func() { value.From(func() {}) })
		mtest.MustPanic(t, func() { value.From(make(chan struct{})) })
	})
}
