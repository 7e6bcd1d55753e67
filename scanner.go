// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

package jlens

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"go4.org/mem"
)

// A Scanner reads lexical tokens from an in-memory source text. Each call
// to Next advances the scanner past exactly one token (or one contiguous
// trivia run) and overwrites the current-token state.
//
// The source is held as UTF-16 code units, so all offsets reported by the
// scanner are code-unit indices rather than byte or rune indices. This
// matches the coordinate system used by editors and language-server
// protocols, which is where the resulting spans are consumed.
//
// The scanner is tolerant: it never fails. Lexical defects are absorbed
// into the returned token and reported via Err, and scanning continues
// with the next call. A scanner is good for one pass over one input; it
// must not be shared between concurrent scans.
type Scanner struct {
	src      []uint16
	pos      int
	comments bool // emit comment trivia (non-standard extension)

	kind  SyntaxKind
	value string
	start int
	err   ScanError

	// Line bookkeeping (0-based internally).
	line      int
	lineStart int
	firstLine int
	firstCol  int
}

// NewScanner constructs a scanner that reads tokens from text.
func NewScanner(text string) *Scanner {
	return &Scanner{src: utf16.Encode([]rune(text))}
}

// AllowComments configures the scanner to emit (true) or not recognize
// (false) comment trivia. Comments are a non-standard extension of the
// JSON grammar; when disabled, which is the default, a "/" participates
// in an Unknown token like any other unreserved character and the
// scanner never emits LineCommentTrivia or BlockCommentTrivia.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input and returns its kind.
// At the end of the input Next returns Eof, with a zero-length span at
// the final offset, on this and every subsequent call.
func (s *Scanner) Next() SyntaxKind {
	s.value = ""
	s.err = ScanOK
	s.start = s.pos
	s.firstLine, s.firstCol = s.line, s.pos-s.lineStart

	if s.pos >= len(s.src) {
		s.kind = Eof
		return s.kind
	}
	ch := s.src[s.pos]

	if isWhiteSpace(ch) {
		for s.pos < len(s.src) && isWhiteSpace(s.src[s.pos]) {
			s.pos++
		}
		s.value = s.text(s.start, s.pos)
		s.kind = Trivia
		return s.kind
	}
	if isLineBreak(ch) {
		s.pos++
		if ch == '\r' && s.pos < len(s.src) && s.src[s.pos] == '\n' {
			s.pos++ // CR+LF is one token
		}
		s.line++
		s.lineStart = s.pos
		s.value = s.text(s.start, s.pos)
		s.kind = LineBreakTrivia
		return s.kind
	}

	switch ch {
	case '{':
		s.kind = s.single(OpenBrace)
	case '}':
		s.kind = s.single(CloseBrace)
	case '[':
		s.kind = s.single(OpenBracket)
	case ']':
		s.kind = s.single(CloseBracket)
	case ',':
		s.kind = s.single(Comma)
	case ':':
		s.kind = s.single(Colon)
	case '"':
		s.pos++
		s.kind = s.scanString()
	case '-':
		s.pos++
		if s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.kind = s.scanNumber()
		} else {
			// A sign with no digit is not silently accepted.
			s.value = "-"
			s.kind = Unknown
		}
	case '/':
		if s.comments && s.pos+1 < len(s.src) && (s.src[s.pos+1] == '/' || s.src[s.pos+1] == '*') {
			s.kind = s.scanComment()
		} else {
			s.kind = s.scanWord()
		}
	default:
		if isDigit(ch) {
			s.kind = s.scanNumber()
		} else {
			s.kind = s.scanWord()
		}
	}
	return s.kind
}

// Kind returns the kind of the current token.
func (s *Scanner) Kind() SyntaxKind { return s.kind }

// Text returns the value text of the current token. For strings this is
// the contents without the enclosing quotes and with escape sequences
// dropped undecoded; for all other tokens it is the raw token text.
// The value is only valid until the next call of Next.
func (s *Scanner) Text() string { return s.value }

// Err returns the lexical condition absorbed into the current token, or
// ScanOK if the token is clean.
func (s *Scanner) Err() ScanError { return s.err }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.start, End: s.pos} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.firstLine + 1, Column: s.firstCol},
		Last:  LineCol{Line: s.line + 1, Column: s.pos - s.lineStart},
	}
}

// Input returns the source as UTF-16 code units. The slice is shared
// with the scanner and must not be modified.
func (s *Scanner) Input() []uint16 { return s.src }

func (s *Scanner) single(kind SyntaxKind) SyntaxKind {
	s.value = s.text(s.pos, s.pos+1)
	s.pos++
	return kind
}

// scanString scans a string literal. The opening quote has already been
// consumed. Raw spans between escape markers are copied verbatim into
// the token value; an escape and the character after it are recognized
// but skipped undecoded. The literal is cut short by an unescaped
// control character (which is not consumed) or by the end of input.
func (s *Scanner) scanString() SyntaxKind {
	var sb strings.Builder
	seg := s.pos
	for {
		if s.pos >= len(s.src) {
			sb.WriteString(s.text(seg, s.pos))
			s.setErr(ScanUnexpectedEndOfString)
			break
		}
		ch := s.src[s.pos]
		if ch == '"' {
			sb.WriteString(s.text(seg, s.pos))
			s.pos++
			break
		}
		if ch == '\\' {
			sb.WriteString(s.text(seg, s.pos))
			s.pos++
			if s.pos >= len(s.src) {
				s.setErr(ScanUnexpectedEndOfString)
				break
			}
			if !isEscapable(s.src[s.pos]) {
				s.setErr(ScanInvalidEscape)
			}
			s.pos++
			seg = s.pos
			continue
		}
		if ch <= 0x1f {
			sb.WriteString(s.text(seg, s.pos))
			if isLineBreak(ch) {
				s.setErr(ScanUnexpectedEndOfString)
			} else {
				s.setErr(ScanInvalidCharacter)
			}
			break
		}
		s.pos++
	}
	s.value = sb.String()
	return StringLiteral
}

// scanNumber scans a numeric literal starting at the first digit; a
// leading minus sign has already been consumed by the caller.
//
// A decimal point with no following digit ends the scan with the dot
// kept inside the token span and the token marked malformed. An
// exponent marker with no following digit is excluded from the span
// entirely, so the token ends before the marker. The asymmetry is
// deliberate and load-bearing for downstream consumers.
func (s *Scanner) scanNumber() SyntaxKind {
	if s.src[s.pos] == '0' {
		s.pos++
	} else {
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		s.pos++
		if s.pos >= len(s.src) || !isDigit(s.src[s.pos]) {
			s.setErr(ScanInvalidNumber)
			s.value = s.text(s.start, s.pos)
			return NumericLiteral
		}
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		mark := s.pos
		s.pos++
		if s.pos < len(s.src) && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.pos++
		}
		if s.pos >= len(s.src) || !isDigit(s.src[s.pos]) {
			s.pos = mark
			s.value = s.text(s.start, s.pos)
			return NumericLiteral
		}
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	s.value = s.text(s.start, s.pos)
	return NumericLiteral
}

// scanComment scans a line or block comment; the current position is at
// the leading slash and the character after it is known to be '/' or '*'.
func (s *Scanner) scanComment() SyntaxKind {
	s.pos++
	if s.src[s.pos] == '/' {
		s.pos++
		for s.pos < len(s.src) && !isLineBreak(s.src[s.pos]) {
			s.pos++
		}
		s.value = s.text(s.start, s.pos)
		return LineCommentTrivia
	}

	s.pos++ // '*'
	closed := false
	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		if ch == '*' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
			s.pos += 2
			closed = true
			break
		}
		s.pos++
		if isLineBreak(ch) {
			if ch == '\r' && s.pos < len(s.src) && s.src[s.pos] == '\n' {
				s.pos++
			}
			s.line++
			s.lineStart = s.pos
		}
	}
	if !closed {
		s.setErr(ScanUnexpectedEndOfComment)
	}
	s.value = s.text(s.start, s.pos)
	return BlockCommentTrivia
}

// scanWord consumes a run of unreserved characters. The first character
// is always taken, so a lone unrecognized character yields an Unknown
// token of length 1.
func (s *Scanner) scanWord() SyntaxKind {
	s.pos++
	for s.pos < len(s.src) && isWordUnit(s.src[s.pos]) {
		s.pos++
	}
	s.value = s.text(s.start, s.pos)

	w := mem.S(s.value)
	switch {
	case w.Equal(mem.S("null")):
		return NullKeyword
	case w.Equal(mem.S("true")):
		return TrueKeyword
	case w.Equal(mem.S("false")):
		return FalseKeyword
	}
	return Unknown
}

func (s *Scanner) text(lo, hi int) string {
	return string(utf16.Decode(s.src[lo:hi]))
}

// setErr records the first lexical condition seen for the current token.
func (s *Scanner) setErr(err ScanError) {
	if s.err == ScanOK {
		s.err = err
	}
}

func isWhiteSpace(u uint16) bool {
	switch u {
	case ' ', '\t', 0x0b, 0x0c, 0xa0, 0xfeff:
		return true
	}
	return u > 0xff && unicode.Is(unicode.Zs, rune(u))
}

func isLineBreak(u uint16) bool {
	return u == '\n' || u == '\r' || u == 0x2028 || u == 0x2029
}

func isDigit(u uint16) bool { return '0' <= u && u <= '9' }

func isEscapable(u uint16) bool {
	switch u {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	}
	return false
}

// isWordUnit reports whether u may continue an Unknown run: anything
// that is not whitespace, a line break, or a reserved structural
// character.
func isWordUnit(u uint16) bool {
	switch u {
	case '{', '}', '[', ']', ',', ':', '"':
		return false
	}
	return !isWhiteSpace(u) && !isLineBreak(u)
}
