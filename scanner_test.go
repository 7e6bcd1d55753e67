// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

package jlens_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jlens/jlens"
)

// scanAll runs sc to the end of its input and returns the kinds of all
// the tokens it produced, trivia included.
func scanAll(sc *jlens.Scanner) []jlens.SyntaxKind {
	var got []jlens.SyntaxKind
	for {
		k := sc.Next()
		if k == jlens.Eof {
			return got
		}
		got = append(got, k)
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jlens.SyntaxKind
	}{
		// Empty and trivia-only inputs
		{"", nil},
		{"  ", []jlens.SyntaxKind{jlens.Trivia}},
		{" \t ", []jlens.SyntaxKind{jlens.Trivia}},
		{"\n", []jlens.SyntaxKind{jlens.LineBreakTrivia}},
		{"\r\n", []jlens.SyntaxKind{jlens.LineBreakTrivia}},
		{"\n\n", []jlens.SyntaxKind{jlens.LineBreakTrivia, jlens.LineBreakTrivia}},
		{"\u2028", []jlens.SyntaxKind{jlens.LineBreakTrivia}},
		{"\u00a0", []jlens.SyntaxKind{jlens.Trivia}},
		{"\ufeff1", []jlens.SyntaxKind{jlens.Trivia, jlens.NumericLiteral}},

		// A carriage return glues to a following line feed, but two
		// line feeds are two tokens.
		{" \r\n ", []jlens.SyntaxKind{jlens.Trivia, jlens.LineBreakTrivia, jlens.Trivia}},

		// Keywords and lookalikes
		{"true false null", []jlens.SyntaxKind{
			jlens.TrueKeyword, jlens.Trivia, jlens.FalseKeyword, jlens.Trivia, jlens.NullKeyword,
		}},
		{"nullx", []jlens.SyntaxKind{jlens.Unknown}},
		{"True", []jlens.SyntaxKind{jlens.Unknown}},

		// Punctuation
		{"{}[],:", []jlens.SyntaxKind{
			jlens.OpenBrace, jlens.CloseBrace, jlens.OpenBracket, jlens.CloseBracket,
			jlens.Comma, jlens.Colon,
		}},

		// Strings and numbers
		{`"" "a b c"`, []jlens.SyntaxKind{jlens.StringLiteral, jlens.Trivia, jlens.StringLiteral}},
		{`0 -1 5139 2.3 5e+9 -0.001E-100`, []jlens.SyntaxKind{
			jlens.NumericLiteral, jlens.Trivia, jlens.NumericLiteral, jlens.Trivia,
			jlens.NumericLiteral, jlens.Trivia, jlens.NumericLiteral, jlens.Trivia,
			jlens.NumericLiteral, jlens.Trivia, jlens.NumericLiteral,
		}},

		// A zero is not followed by more digits.
		{"0123", []jlens.SyntaxKind{jlens.NumericLiteral, jlens.NumericLiteral}},

		// A bare sign is not silently accepted as a number.
		{"-x", []jlens.SyntaxKind{jlens.Unknown, jlens.Unknown}},

		// Reserved characters end an unknown run; a string may begin
		// immediately after one.
		{`foo"bar"`, []jlens.SyntaxKind{jlens.Unknown, jlens.StringLiteral}},

		// Comment syntax is not recognized by default.
		{"// hi", []jlens.SyntaxKind{jlens.Unknown, jlens.Trivia, jlens.Unknown}},

		// Mixed structure with trivia interleaved
		{`{"a": 1}` + "\n", []jlens.SyntaxKind{
			jlens.OpenBrace, jlens.StringLiteral, jlens.Colon, jlens.Trivia,
			jlens.NumericLiteral, jlens.CloseBrace, jlens.LineBreakTrivia,
		}},
	}
	for _, test := range tests {
		got := scanAll(jlens.NewScanner(test.input))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_spans(t *testing.T) {
	tests := []struct {
		input string
		want  []jlens.Span
	}{
		{`{"ab":12}`, []jlens.Span{
			{0, 1}, {1, 5}, {5, 6}, {6, 8}, {8, 9},
		}},

		// An astral-plane rune occupies two code units, so the spans
		// here are UTF-16 offsets rather than byte or rune offsets.
		{"[\"\U0001F600\",1]", []jlens.Span{
			{0, 1}, {1, 5}, {5, 6}, {6, 7}, {7, 8},
		}},
	}
	for _, test := range tests {
		var got []jlens.Span
		sc := jlens.NewScanner(test.input)
		for sc.Next() != jlens.Eof {
			got = append(got, sc.Span())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nSpans: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_eofIdempotent(t *testing.T) {
	sc := jlens.NewScanner("17 ")
	for sc.Next() != jlens.Eof {
	}
	for i := 0; i < 3; i++ {
		if k := sc.Next(); k != jlens.Eof {
			t.Errorf("Next at EOF (call %d): got %v, want %v", i+1, k, jlens.Eof)
		}
		if want := (jlens.Span{Pos: 3, End: 3}); sc.Span() != want {
			t.Errorf("Span at EOF: got %v, want %v", sc.Span(), want)
		}
	}
}

func TestScanner_strings(t *testing.T) {
	tests := []struct {
		input string
		text  string
		end   int
		err   jlens.ScanError
	}{
		// Plain contents: quotes are excluded from the value.
		{`"abc"`, "abc", 5, jlens.ScanOK},
		{`""`, "", 2, jlens.ScanOK},

		// Escape sequences are recognized and dropped, not decoded.
		{`"a\nb"`, "ab", 6, jlens.ScanOK},
		{`"\u0041"`, "0041", 8, jlens.ScanOK},
		{`"\"\\"`, "", 6, jlens.ScanOK},

		// An unrecognized escape is flagged but the scan continues.
		{`"a\qb"`, "ab", 6, jlens.ScanInvalidEscape},

		// Unterminated: at EOF, after a dangling backslash, and at an
		// unescaped line break (which is not consumed).
		{`"abc`, "abc", 4, jlens.ScanUnexpectedEndOfString},
		{`"abc\`, "abc", 5, jlens.ScanUnexpectedEndOfString},
		{"\"ab\ncd\"", "ab", 3, jlens.ScanUnexpectedEndOfString},

		// A raw control character stops the string without being
		// consumed.
		{"\"a\tb\"", "a", 2, jlens.ScanInvalidCharacter},

		// The first lexical condition wins.
		{"\"a\\q\tb\"", "a", 4, jlens.ScanInvalidEscape},
	}
	for _, test := range tests {
		sc := jlens.NewScanner(test.input)
		if k := sc.Next(); k != jlens.StringLiteral {
			t.Errorf("Input: %#q: got token %v, want %v", test.input, k, jlens.StringLiteral)
			continue
		}
		if got := sc.Text(); got != test.text {
			t.Errorf("Input: %#q: got text %q, want %q", test.input, got, test.text)
		}
		if got := sc.Span(); got.Pos != 0 || got.End != test.end {
			t.Errorf("Input: %#q: got span %v, want 0-%d", test.input, got, test.end)
		}
		if got := sc.Err(); got != test.err {
			t.Errorf("Input: %#q: got err %v, want %v", test.input, got, test.err)
		}
	}
}

func TestScanner_numbers(t *testing.T) {
	tests := []struct {
		input string
		text  string
		err   jlens.ScanError
	}{
		{"0", "0", jlens.ScanOK},
		{"-17", "-17", jlens.ScanOK},
		{"2.25", "2.25", jlens.ScanOK},
		{"6.02e23", "6.02e23", jlens.ScanOK},
		{"1E-9", "1E-9", jlens.ScanOK},
		{"5e+9", "5e+9", jlens.ScanOK},

		// A trailing decimal point stays inside the token and is
		// flagged as malformed.
		{"123.", "123.", jlens.ScanInvalidNumber},
		{"123.x", "123.", jlens.ScanInvalidNumber},

		// A dangling exponent marker is excluded from the token and is
		// not flagged; the marker is rescanned as the next token.
		{"1e+", "1", jlens.ScanOK},
		{"2E", "2", jlens.ScanOK},
	}
	for _, test := range tests {
		sc := jlens.NewScanner(test.input)
		if k := sc.Next(); k != jlens.NumericLiteral {
			t.Errorf("Input: %#q: got token %v, want %v", test.input, k, jlens.NumericLiteral)
			continue
		}
		if got := sc.Text(); got != test.text {
			t.Errorf("Input: %#q: got text %q, want %q", test.input, got, test.text)
		}
		if got := sc.Err(); got != test.err {
			t.Errorf("Input: %#q: got err %v, want %v", test.input, got, test.err)
		}
	}

	// The excluded exponent marker begins the next token.
	sc := jlens.NewScanner("1e+")
	sc.Next()
	if k := sc.Next(); k != jlens.Unknown || sc.Text() != "e+" {
		t.Errorf(`After "1": got %v %q, want Unknown "e+"`, k, sc.Text())
	}
}

func TestScanner_location(t *testing.T) {
	const input = "ab\n  17\r\nnull"

	want := []struct {
		kind jlens.SyntaxKind
		loc  string
	}{
		{jlens.Unknown, "1:0-2"},
		{jlens.LineBreakTrivia, "1:2-2:0"},
		{jlens.Trivia, "2:0-2"},
		{jlens.NumericLiteral, "2:2-4"},
		{jlens.LineBreakTrivia, "2:4-3:0"},
		{jlens.NullKeyword, "3:0-4"},
	}
	sc := jlens.NewScanner(input)
	for i, w := range want {
		if k := sc.Next(); k != w.kind {
			t.Fatalf("Token %d: got %v, want %v", i, k, w.kind)
		}
		if got := sc.Location().String(); got != w.loc {
			t.Errorf("Token %d (%v): got location %q, want %q", i, w.kind, got, w.loc)
		}
	}
	if k := sc.Next(); k != jlens.Eof {
		t.Errorf("Trailing token: got %v, want %v", k, jlens.Eof)
	}
}

func TestScanner_comments(t *testing.T) {
	t.Run("Line", func(t *testing.T) {
		sc := jlens.NewScanner("// hi\n1")
		sc.AllowComments(true)
		want := []jlens.SyntaxKind{jlens.LineCommentTrivia, jlens.LineBreakTrivia, jlens.NumericLiteral}
		if diff := cmp.Diff(want, scanAll(sc)); diff != "" {
			t.Errorf("Tokens: (-want, +got)\n%s", diff)
		}
	})
	t.Run("LineAtEOF", func(t *testing.T) {
		sc := jlens.NewScanner("1 // hi")
		sc.AllowComments(true)
		want := []jlens.SyntaxKind{jlens.NumericLiteral, jlens.Trivia, jlens.LineCommentTrivia}
		if diff := cmp.Diff(want, scanAll(sc)); diff != "" {
			t.Errorf("Tokens: (-want, +got)\n%s", diff)
		}
	})
	t.Run("Block", func(t *testing.T) {
		sc := jlens.NewScanner("/* a\nb */1")
		sc.AllowComments(true)
		if k := sc.Next(); k != jlens.BlockCommentTrivia {
			t.Fatalf("Next: got %v, want %v", k, jlens.BlockCommentTrivia)
		}
		if got := sc.Err(); got != jlens.ScanOK {
			t.Errorf("Err: got %v, want %v", got, jlens.ScanOK)
		}
		// Line bookkeeping tracks breaks inside the comment.
		if got, want := sc.Location().String(), "1:0-2:4"; got != want {
			t.Errorf("Location: got %q, want %q", got, want)
		}
		if k := sc.Next(); k != jlens.NumericLiteral {
			t.Errorf("Next: got %v, want %v", k, jlens.NumericLiteral)
		}
	})
	t.Run("BlockUnterminated", func(t *testing.T) {
		sc := jlens.NewScanner("/* never done")
		sc.AllowComments(true)
		if k := sc.Next(); k != jlens.BlockCommentTrivia {
			t.Fatalf("Next: got %v, want %v", k, jlens.BlockCommentTrivia)
		}
		if got := sc.Err(); got != jlens.ScanUnexpectedEndOfComment {
			t.Errorf("Err: got %v, want %v", got, jlens.ScanUnexpectedEndOfComment)
		}
	})
	t.Run("Disabled", func(t *testing.T) {
		sc := jlens.NewScanner("/* x */")
		want := []jlens.SyntaxKind{jlens.Unknown, jlens.Trivia, jlens.Unknown, jlens.Trivia, jlens.Unknown}
		if diff := cmp.Diff(want, scanAll(sc)); diff != "" {
			t.Errorf("Tokens: (-want, +got)\n%s", diff)
		}
	})
}
