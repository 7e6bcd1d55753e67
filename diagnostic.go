// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

package jlens

import "fmt"

// An ErrorCode classifies a parse diagnostic.
type ErrorCode byte

// Constants defining the valid ErrorCode values.
const (
	CodeUndefined          ErrorCode = iota // generic condition
	CodeValueExpected                       // a value was required but missing
	CodeCommaExpected                       // a separating comma was required
	CodeColonExpected                       // a property colon was required
	CodePropertyExpected                    // an object member was required
	CodeEndOfFileExpected                   // trailing input after the root value
	CodeTrailingComma                       // comma before a closing delimiter
	CodeDuplicateKey                        // repeated object key
	CodeInvalidNumberFormat                 // malformed numeric literal
	CodeUnterminatedString                  // string cut short by EOF or a line break
	CodeInvalidCharacter                    // unescaped control character in a string
	CodeInvalidEscape                       // unrecognized escape sequence
	CodeUnterminatedComment                 // block comment cut short by EOF
)

var codeStr = [...]string{
	CodeUndefined:           "undefined",
	CodeValueExpected:       "value expected",
	CodeCommaExpected:       "comma expected",
	CodeColonExpected:       "colon expected",
	CodePropertyExpected:    "property expected",
	CodeEndOfFileExpected:   "end of file expected",
	CodeTrailingComma:       "trailing comma",
	CodeDuplicateKey:        "duplicate key",
	CodeInvalidNumberFormat: "invalid number format",
	CodeUnterminatedString:  "unterminated string",
	CodeInvalidCharacter:    "invalid character",
	CodeInvalidEscape:       "invalid escape",
	CodeUnterminatedComment: "unterminated comment",
}

func (c ErrorCode) String() string {
	if int(c) >= len(codeStr) {
		return codeStr[CodeUndefined]
	}
	return codeStr[c]
}

// A Diagnostic is a structured report of one parsing problem. Diagnostics
// are collected by the parser rather than thrown; a parse always returns
// a document, and its diagnostics list is the sole error channel.
type Diagnostic struct {
	Code    ErrorCode
	Message string
	Span    Span // half-open code-unit range the report points at
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d-%d: %s", d.Span.Pos, d.Span.End, d.Message)
}
