// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

package ast

import (
	"fmt"
	"math/big"
	"slices"
	"unicode"

	"github.com/jlens/jlens"
)

// Options control optional parser behavior. The zero value is the
// default configuration.
type Options struct {
	// AllowComments extends the grammar with C++ style line ("// ...")
	// and block ("/* ... */") comments, scanned as trivia and discarded
	// like whitespace. When false (the default), comment syntax is not
	// recognized and a "/" becomes part of an Unknown token.
	AllowComments bool

	// FixTrailingCommaLookahead changes the array recovery lookahead
	// after a comma to check for "]" instead of "}". The historical
	// behavior checks the object close token there, so a trailing comma
	// inside an array is reported as a missing value rather than as a
	// trailing comma. The historical check is kept as the default for
	// compatibility; set this to diagnose array trailing commas under
	// their own code.
	FixTrailingCommaLookahead bool
}

// Parse parses text and returns its document. Parsing is tolerant: it
// always returns a usable document and never fails outright. Defects in
// the input are reported in the document's Diagnostics list, and the
// tree covers as much of the input as could be recovered.
func Parse(text string) *Document { return ParseWithOptions(text, Options{}) }

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(text string, opts Options) *Document {
	sc := jlens.NewScanner(text)
	sc.AllowComments(opts.AllowComments)
	p := &parser{sc: sc, src: sc.Input(), opts: opts}

	doc := newDocument(text, sc.Input())
	if p.next() != jlens.Eof {
		if root := p.parseValue(nil); root == nil {
			p.errorHere(jlens.CodeValueExpected, "value expected", nil, nil)
		} else {
			doc.Root = root
			if p.kind != jlens.Eof {
				// Trailing input is reported once, not consumed.
				p.errorHere(jlens.CodeEndOfFileExpected, "end of file expected", nil, nil)
			}
		}
	}
	doc.Diagnostics = p.diags
	return doc
}

// A parser consumes the scanner's token stream by recursive descent.
// Its cursor state is good for exactly one parse.
type parser struct {
	sc   *jlens.Scanner
	src  []uint16
	kind jlens.SyntaxKind
	opts Options

	diags []jlens.Diagnostic
}

// next advances to the next significant token, skipping trivia. An
// unterminated block comment is the one trivia defect worth reporting;
// everything else about trivia is discarded.
func (p *parser) next() jlens.SyntaxKind {
	for {
		k := p.sc.Next()
		if !k.IsTrivia() {
			p.kind = k
			return k
		}
		if k == jlens.BlockCommentTrivia && p.sc.Err() == jlens.ScanUnexpectedEndOfComment {
			p.report(jlens.CodeUnterminatedComment, "unterminated comment", p.sc.Span())
		}
	}
}

// parseValue parses a single value of any kind, or returns nil if the
// current token cannot begin a value. The caller is responsible for
// reporting the miss.
func (p *parser) parseValue(parent Node) Node {
	if n := p.parseArray(parent); n != nil {
		return n
	}
	if n := p.parseObject(parent); n != nil {
		return n
	}
	if n := p.parseString(parent); n != nil {
		return n
	}
	if n := p.parseNumber(parent); n != nil {
		return n
	}
	return p.parseLiteral(parent)
}

func (p *parser) parseArray(parent Node) Node {
	if p.kind != jlens.OpenBracket {
		return nil
	}
	arr := &Array{node: node{pos: p.sc.Span().Pos, parent: parent}}
	p.next()

	// The historical recovery lookahead after a comma tests the object
	// close token here, not the array one.
	closeCheck := jlens.CloseBrace
	if p.opts.FixTrailingCommaLookahead {
		closeCheck = jlens.CloseBracket
	}

	needsComma := false
	for p.kind != jlens.CloseBracket && p.kind != jlens.Eof {
		if p.kind == jlens.Comma {
			if !needsComma {
				p.errorHere(jlens.CodeValueExpected, "value expected", nil, nil)
			}
			commaSpan := p.sc.Span()
			p.next()
			if p.kind == closeCheck {
				if needsComma {
					p.report(jlens.CodeTrailingComma, "trailing comma", commaSpan)
				}
				continue
			}
		} else if needsComma {
			p.errorHere(jlens.CodeCommaExpected, "comma expected", nil, nil)
		}
		if item := p.parseValue(arr); item != nil {
			arr.Items = append(arr.Items, item)
		} else {
			p.errorHere(jlens.CodeValueExpected, "value expected", nil,
				[]jlens.SyntaxKind{jlens.CloseBracket, jlens.Comma})
		}
		needsComma = true
	}

	// Arrays always finalize, even when the loop ended at Eof rather
	// than at the closing bracket.
	return p.finalize(arr, true)
}

func (p *parser) parseObject(parent Node) Node {
	if p.kind != jlens.OpenBrace {
		return nil
	}
	obj := &Object{node: node{pos: p.sc.Span().Pos, parent: parent}}
	seen := make(map[string]Node)
	p.next()

	needsComma := false
	for p.kind != jlens.CloseBrace && p.kind != jlens.Eof {
		if p.kind == jlens.Comma {
			if !needsComma {
				p.errorHere(jlens.CodeValueExpected, "value expected", nil, nil)
			}
			commaSpan := p.sc.Span()
			p.next()
			if p.kind == jlens.CloseBrace {
				if needsComma {
					p.report(jlens.CodeTrailingComma, "trailing comma", commaSpan)
				}
				continue
			}
		} else if needsComma {
			p.errorHere(jlens.CodeCommaExpected, "comma expected", nil, nil)
		}
		if prop := p.parseProperty(obj, seen); prop != nil {
			obj.Properties = append(obj.Properties, prop)
		} else {
			p.errorHere(jlens.CodePropertyExpected, "property expected", nil,
				[]jlens.SyntaxKind{jlens.CloseBrace, jlens.Comma})
		}
		needsComma = true
	}

	// Unlike arrays, an object that never reaches its closing brace
	// fails outright. Diagnostics collected along the way are kept.
	if p.kind != jlens.CloseBrace {
		return nil
	}
	return p.finalize(obj, true)
}

func (p *parser) parseProperty(parent *Object, seen map[string]Node) *Property {
	var key *String
	if k := p.parseString(nil); k != nil {
		key = k.(*String)
	} else if p.kind == jlens.Unknown {
		// Best-effort recovery: accept an unquoted token as the key so
		// parsing of the member can continue.
		sp := p.sc.Span()
		key = &String{node: node{pos: sp.Pos, end: sp.End}, Value: p.sc.Text()}
		p.next()
	} else {
		return nil
	}

	prop := &Property{node: node{pos: key.Span().Pos, parent: parent}, Key: key}
	key.parent = prop

	if _, ok := seen[key.Value]; ok {
		p.report(jlens.CodeDuplicateKey,
			fmt.Sprintf("duplicate object key %q", key.Value), key.Span())
	}

	if p.kind == jlens.Colon {
		prop.ColonOffset = p.sc.Span().Pos
		p.next()
	} else {
		p.errorHere(jlens.CodeColonExpected, "colon expected", nil, nil)
	}

	val := p.parseValue(prop)
	if val == nil {
		// A property with no value is abandoned entirely.
		p.errorHere(jlens.CodeValueExpected, "value expected", nil,
			[]jlens.SyntaxKind{jlens.CloseBrace, jlens.Comma})
		return nil
	}
	prop.Value = val
	seen[key.Value] = val

	// The property ends where its value ends; the value parse has
	// already advanced, so the property must not advance again.
	prop.end = val.Span().End
	return prop
}

func (p *parser) parseString(parent Node) Node {
	if p.kind != jlens.StringLiteral {
		return nil
	}
	sp := p.sc.Span()
	s := &String{node: node{pos: sp.Pos, parent: parent}, Value: p.sc.Text()}
	switch p.sc.Err() {
	case jlens.ScanUnexpectedEndOfString:
		p.report(jlens.CodeUnterminatedString, "unterminated string", sp)
	case jlens.ScanInvalidCharacter:
		p.report(jlens.CodeInvalidCharacter, "invalid character in string", sp)
	case jlens.ScanInvalidEscape:
		p.report(jlens.CodeInvalidEscape, "invalid escape sequence", sp)
	}
	return p.finalize(s, true)
}

func (p *parser) parseNumber(parent Node) Node {
	if p.kind != jlens.NumericLiteral {
		return nil
	}
	sp := p.sc.Span()
	text := p.sc.Text()
	n := &Number{node: node{pos: sp.Pos, parent: parent}, Text: text}
	if r, ok := new(big.Rat).SetString(text); ok {
		n.Value = r
	}
	if p.sc.Err() == jlens.ScanInvalidNumber || n.Value == nil {
		// The node survives as a malformed placeholder with its span
		// intact, rather than vanishing from the tree.
		n.Malformed = true
		p.report(jlens.CodeInvalidNumberFormat,
			fmt.Sprintf("invalid number %q", text), sp)
	}
	return p.finalize(n, true)
}

func (p *parser) parseLiteral(parent Node) Node {
	var lit Node
	switch p.kind {
	case jlens.NullKeyword:
		lit = &Null{node: node{pos: p.sc.Span().Pos, parent: parent}}
	case jlens.TrueKeyword:
		lit = &Bool{node: node{pos: p.sc.Span().Pos, parent: parent}, Value: true}
	case jlens.FalseKeyword:
		lit = &Bool{node: node{pos: p.sc.Span().Pos, parent: parent}}
	default:
		return nil
	}
	return p.finalize(lit, true)
}

// finalize closes n at the end of the current token, which must be the
// token that defines the node's end: the node's own token for leaves,
// the closing delimiter for containers. When advance is set the parser
// then moves past that token; it is suppressed for nodes whose last
// token has already been consumed.
func (p *parser) finalize(n Node, advance bool) Node {
	n.base().end = p.sc.Span().End
	if advance {
		p.next()
	}
	return n
}

// errorHere records a diagnostic at the current token. A zero-length
// token (at Eof, or a missing token) would produce an empty range, so
// the position is rewound one character and then across any contiguous
// whitespace to point at the last meaningful character.
//
// If skip sets are given, tokens are then consumed until one in
// skipUntilAfter is consumed, one in skipUntil is reached, or the input
// ends. Container loops rely on this for forward progress when a
// sub-parse fails without consuming anything.
func (p *parser) errorHere(code jlens.ErrorCode, msg string, skipUntilAfter, skipUntil []jlens.SyntaxKind) {
	sp := p.sc.Span()
	if sp.IsEmpty() && sp.Pos > 0 {
		start := sp.Pos - 1
		for start > 0 && unicode.IsSpace(rune(p.src[start])) {
			start--
		}
		sp = jlens.Span{Pos: start, End: start + 1}
	}
	p.report(code, msg, sp)

	if len(skipUntilAfter) > 0 || len(skipUntil) > 0 {
		for p.kind != jlens.Eof {
			if slices.Contains(skipUntilAfter, p.kind) {
				p.next()
				break
			}
			if slices.Contains(skipUntil, p.kind) {
				break
			}
			p.next()
		}
	}
}

// report appends a diagnostic, collapsing consecutive diagnostics that
// begin at the same start offset into the first one.
func (p *parser) report(code jlens.ErrorCode, msg string, sp jlens.Span) {
	if n := len(p.diags); n > 0 && p.diags[n-1].Span.Pos == sp.Pos {
		return
	}
	p.diags = append(p.diags, jlens.Diagnostic{Code: code, Message: msg, Span: sp})
}
