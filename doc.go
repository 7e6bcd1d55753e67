// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

// Package jlens implements a fault-tolerant JSON scanner for editor
// tooling. Its companion package ast builds concrete syntax trees whose
// nodes carry exact source spans.
//
// # Offsets
//
// All offsets are UTF-16 code-unit indices into the input text, the
// coordinate system used by editors and language-server protocols. A
// character outside the basic multilingual plane counts as two units.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a
// scanner from an input string and call its Next method to iterate over
// the token stream:
//
//	s := jlens.NewScanner(input)
//	for s.Next() != jlens.Eof {
//	   log.Printf("%v at %v", s.Kind(), s.Span())
//	}
//
// The scanner never fails. Whitespace and line breaks are reported as
// trivia tokens, unrecognized input is reported as Unknown tokens, and
// lexical defects such as an unterminated string are absorbed into the
// affected token and reported by Err. Once the input is exhausted, Next
// returns Eof with a zero-length span on every subsequent call.
//
// # Parsing
//
// Package ast consumes the token stream and produces a Document: a tree
// of nodes annotated with spans, plus an ordered list of Diagnostic
// values describing every defect encountered. Parsing never aborts on
// malformed input; the diagnostics list is the sole error channel.
package jlens
