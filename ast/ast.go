// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

// Package ast defines a concrete syntax tree for JSON values, and a
// tolerant parser that constructs syntax trees annotated with exact
// source spans from JSON source.
package ast

import (
	"fmt"
	"math/big"

	"github.com/jlens/jlens"
)

// A Node is a single node of a concrete syntax tree. The concrete type
// is one of *Null, *Bool, *Number, *String, *Array, *Object, or
// *Property; the set is closed.
//
// Every node records the half-open span of source text it covers, a
// non-owning reference to its parent (nil for the root), and its
// children in source order. A child's span is always contained within
// its parent's span, and sibling spans never overlap.
type Node interface {
	// Span reports the source range covered by the node.
	Span() jlens.Span

	// Parent returns the node that owns this node, or nil for the root.
	Parent() Node

	// Children returns the node's children in ascending span order.
	Children() []Node

	base() *node
}

// node carries the span and parent link shared by all node kinds.
type node struct {
	pos, end int
	parent   Node
}

func (n *node) Span() jlens.Span { return jlens.Span{Pos: n.pos, End: n.end} }
func (n *node) Parent() Node     { return n.parent }
func (n *node) base() *node      { return n }

// Null represents the null constant.
type Null struct{ node }

func (*Null) Children() []Node { return nil }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	node

	Value bool
}

func (*Bool) Children() []Node { return nil }

// A Number is a numeric value. The value is kept as an exact decimal
// rational rather than a binary float, so large and high-precision
// literals survive a round trip through the tree.
type Number struct {
	node

	Value     *big.Rat // nil when the literal could not be converted
	Text      string   // the literal as written
	Malformed bool     // the literal was not valid JSON number syntax
}

func (*Number) Children() []Node { return nil }

// IsInt reports whether the number is an exact integer.
func (n *Number) IsInt() bool { return n.Value != nil && n.Value.IsInt() }

// Int64 returns the value as an int64, and panics if the number is
// malformed, not an integer, or out of range.
func (n *Number) Int64() int64 {
	if !n.IsInt() || !n.Value.Num().IsInt64() {
		panic(fmt.Sprintf("number %q is not an int64", n.Text))
	}
	return n.Value.Num().Int64()
}

// Float64 returns the nearest float64 to the value. It panics if the
// number is malformed.
func (n *Number) Float64() float64 {
	if n.Value == nil {
		panic(fmt.Sprintf("number %q has no value", n.Text))
	}
	f, _ := n.Value.Float64()
	return f
}

// A String is a string value. Value holds the text as scanned: the
// enclosing quotes are removed but escape sequences are not decoded.
// Use jlens.Unquote on the original source span when the decoded text
// is required.
type String struct {
	node

	Value string
}

func (*String) Children() []Node { return nil }

// An Array is a sequence of values.
type Array struct {
	node

	Items []Node
}

func (a *Array) Children() []Node { return a.Items }

func (a *Array) Len() int { return len(a.Items) }

// An Object is a collection of key-value properties.
type Object struct {
	node

	Properties []*Property
}

func (o *Object) Children() []Node {
	kids := make([]Node, len(o.Properties))
	for i, p := range o.Properties {
		kids[i] = p
	}
	return kids
}

func (o *Object) Len() int { return len(o.Properties) }

// Find returns the first property of o with the given key, or nil.
// Keys are compared on their raw (undecoded) text.
func (o *Object) Find(key string) *Property {
	if i := o.IndexKey(key); i >= 0 {
		return o.Properties[i]
	}
	return nil
}

// IndexKey returns the index of the first property of o with the given
// key, or -1.
func (o *Object) IndexKey(key string) int {
	for i, p := range o.Properties {
		if p.Key != nil && p.Key.Value == key {
			return i
		}
	}
	return -1
}

// A Property is a single key-value pair belonging to an Object. Its
// span covers the key through the end of the value.
type Property struct {
	node

	Key   *String
	Value Node

	// ColonOffset is the offset of the separating colon, or 0 when the
	// colon was absent from the source.
	ColonOffset int
}

func (p *Property) Children() []Node {
	kids := make([]Node, 0, 2)
	if p.Key != nil {
		kids = append(kids, p.Key)
	}
	if p.Value != nil {
		kids = append(kids, p.Value)
	}
	return kids
}

// Walk calls f for n and each of its descendants in depth-first source
// order. If f reports false for a node, its children are skipped.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, f)
	}
}
