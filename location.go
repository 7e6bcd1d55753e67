// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

package jlens

import "fmt"

// A Span describes a contiguous span of source input as a half-open
// interval of UTF-16 code-unit offsets.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of the span in code units.
func (s Span) Len() int { return s.End - s.Pos }

// IsEmpty reports whether the span is empty.
func (s Span) IsEmpty() bool { return s.End <= s.Pos }

// Contains reports whether offset falls within the span.
func (s Span) Contains(offset int) bool { return offset >= s.Pos && offset < s.End }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // code-unit offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%d:%d-%d", loc.First.Line, loc.First.Column, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}
