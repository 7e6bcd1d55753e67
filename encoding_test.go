// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

package jlens_test

import (
	"testing"

	"github.com/jlens/jlens"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"a b c", `"a b c"`},
		{`a "b" c`, `"a \"b\" c"`},
		{"back\\slash", `"back\\slash"`},
		{"a\tb\nc", `"a\tb\nc"`},
		{"\b\f\r", `"\b\f\r"`},
		{"\x00\x1f", `"\u0000\u001f"`},
		{"fancy ☃ pants", `"fancy ☃ pants"`},

		// Invalid UTF-8 is replaced, and the replacement is escaped.
		{"\xff", `"\ufffd"`},

		// The Unicode line separators are valid unescaped in JSON, but
		// are escaped anyway so the output can be embedded where they
		// would break a line.
		{"a b c", `"a\u2028b\u2029c"`},
	}
	for _, test := range tests {
		if got := jlens.Quote(test.input); got != test.want {
			t.Errorf("Quote %q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
		ok          bool
	}{
		{`""`, "", true},
		{`"abc"`, "abc", true},
		{`"a\"b\\c"`, `a"b\c`, true},
		{`"a\/b"`, "a/b", true},
		{`"a\tb\nc"`, "a\tb\nc", true},
		{`"\b\f\r"`, "\b\f\r", true},
		{`"Aé"`, "Aé", true},
		{`"☃"`, "☃", true},

		// Invalid escapes decode to the replacement rune.
		{`"a\qb"`, "a�b", true},
		{`"\uZZZZ"`, "�", true},

		// Structural failures
		{``, "", false},
		{`"`, "", false},
		{`abc`, "", false},
		{`"abc`, "", false},
		{`"a\"`, "", false},
		{`"\u00"`, "", false},
	}
	for _, test := range tests {
		got, err := jlens.Unquote(test.input)
		if test.ok {
			if err != nil {
				t.Errorf("Unquote %#q: unexpected error: %v", test.input, err)
			} else if string(got) != test.want {
				t.Errorf("Unquote %#q: got %q, want %q", test.input, got, test.want)
			}
		} else if err == nil {
			t.Errorf("Unquote %#q: got %q, wanted error", test.input, got)
		}
	}
}
