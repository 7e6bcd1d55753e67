// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

package jlens

// A SyntaxKind is the type of a lexical token in the JSON grammar.
type SyntaxKind byte

// Constants defining the valid SyntaxKind values.
const (
	Unknown           SyntaxKind = iota // unrecognized input
	OpenBrace                           // left brace "{"
	CloseBrace                          // right brace "}"
	OpenBracket                         // left square bracket "["
	CloseBracket                        // right square bracket "]"
	Comma                               // comma ","
	Colon                               // colon ":"
	NullKeyword                         // constant: null
	TrueKeyword                         // constant: true
	FalseKeyword                        // constant: false
	StringLiteral                       // quoted string
	NumericLiteral                      // number
	LineCommentTrivia                   // comment: // ... <LF>
	BlockCommentTrivia                  // comment: /* ... */
	LineBreakTrivia                     // line break (LF, CR, CRLF, LS, PS)
	Trivia                              // whitespace run
	Eof                                 // end of input
)

var kindStr = [...]string{
	Unknown:            "unknown",
	OpenBrace:          `"{"`,
	CloseBrace:         `"}"`,
	OpenBracket:        `"["`,
	CloseBracket:       `"]"`,
	Comma:              `","`,
	Colon:              `":"`,
	NullKeyword:        "null",
	TrueKeyword:        "true",
	FalseKeyword:       "false",
	StringLiteral:      "string",
	NumericLiteral:     "number",
	LineCommentTrivia:  "line comment",
	BlockCommentTrivia: "block comment",
	LineBreakTrivia:    "line break",
	Trivia:             "whitespace",
	Eof:                "end of input",
}

func (k SyntaxKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Unknown]
	}
	return kindStr[k]
}

// IsTrivia reports whether k is a trivia kind, discarded by the parser.
func (k SyntaxKind) IsTrivia() bool {
	switch k {
	case Trivia, LineBreakTrivia, LineCommentTrivia, BlockCommentTrivia:
		return true
	}
	return false
}

// A ScanError describes a lexical defect absorbed into the current token.
// The scanner keeps producing tokens regardless; the parser decides
// whether and how to report the condition.
type ScanError byte

// Constants defining the valid ScanError values.
const (
	ScanOK                     ScanError = iota // no defect
	ScanUnexpectedEndOfString                   // string cut short by EOF or a line break
	ScanInvalidCharacter                        // unescaped control character in a string
	ScanInvalidEscape                           // unrecognized character after backslash
	ScanInvalidNumber                           // malformed numeric literal
	ScanUnexpectedEndOfComment                  // block comment cut short by EOF
)

var scanErrStr = [...]string{
	ScanOK:                     "ok",
	ScanUnexpectedEndOfString:  "unexpected end of string",
	ScanInvalidCharacter:       "invalid character in string",
	ScanInvalidEscape:          "invalid escape sequence",
	ScanInvalidNumber:          "invalid number format",
	ScanUnexpectedEndOfComment: "unexpected end of comment",
}

func (e ScanError) String() string {
	if int(e) >= len(scanErrStr) {
		return "unknown scan error"
	}
	return scanErrStr[e]
}
