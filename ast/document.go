// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

package ast

import (
	"sort"
	"unicode/utf16"

	"github.com/jlens/jlens"
)

// A Document is the result of one parse: an optional root node and the
// ordered diagnostics collected while building it. Root is nil only
// when the input was empty or held nothing but trivia.
//
// A Document is immutable after construction and is a pure query
// surface; it may be shared freely between goroutines without locking.
type Document struct {
	Root        Node
	Diagnostics []jlens.Diagnostic

	text  string
	src   []uint16
	lines []int // offsets of line starts, ascending; lines[0] == 0
}

func newDocument(text string, src []uint16) *Document {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			lines = append(lines, i+1)
		case '\n', 0x2028, 0x2029:
			lines = append(lines, i+1)
		}
	}
	return &Document{text: text, src: src, lines: lines}
}

// Text returns the source text the document was parsed from.
func (d *Document) Text() string { return d.text }

// Len reports the length of the source in UTF-16 code units.
func (d *Document) Len() int { return len(d.src) }

// SpanText returns the source substring covered by sp. Spans reaching
// outside the source are clamped to it.
func (d *Document) SpanText(sp jlens.Span) string {
	lo := min(max(sp.Pos, 0), len(d.src))
	hi := min(max(sp.End, lo), len(d.src))
	return string(utf16.Decode(d.src[lo:hi]))
}

// NodeAt returns the smallest node whose span contains offset, or nil
// if the offset falls outside the root's span (or the document is
// empty). A property key offset resolves to the key's String node, a
// brace offset to the containing object, and so on.
func (d *Document) NodeAt(offset int) Node {
	if d.Root == nil {
		return nil
	}
	return nodeAt(d.Root, offset)
}

func nodeAt(n Node, offset int) Node {
	if !n.Span().Contains(offset) {
		return nil
	}
	for _, c := range n.Children() {
		// Children are sorted by start offset, so nothing past the
		// first child starting beyond the target can contain it.
		if c.Span().Pos > offset {
			break
		}
		if hit := nodeAt(c, offset); hit != nil {
			return hit
		}
	}
	return n
}

// PositionAt converts a code-unit offset into editor coordinates:
// 1-based line, 0-based column. Offsets beyond the source report the
// final position.
func (d *Document) PositionAt(offset int) jlens.LineCol {
	if offset > len(d.src) {
		offset = len(d.src)
	} else if offset < 0 {
		offset = 0
	}
	line := sort.SearchInts(d.lines, offset+1) - 1
	return jlens.LineCol{Line: line + 1, Column: offset - d.lines[line]}
}

// Location expands a span into a full location with line and column
// coordinates for both ends.
func (d *Document) Location(sp jlens.Span) jlens.Location {
	return jlens.Location{Span: sp, First: d.PositionAt(sp.Pos), Last: d.PositionAt(sp.End)}
}
