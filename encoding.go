// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

package jlens

import (
	"errors"
	"strings"

	"github.com/jlens/jlens/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
//
// The syntax tree built by the ast package keeps string values in their
// raw, undecoded form; Quote and Unquote are the conversion points for
// consumers that need encoded or decoded text (hover contents, key
// labels, and similar).
func Quote(src string) string {
	buf := make([]byte, 0, len(src)+2)
	buf = append(buf, '"')
	buf = append(buf, escape.Quote(mem.S(src))...)
	buf = append(buf, '"')
	return string(buf)
}

// Unquote decodes a JSON string value. Double quotation marks are
// removed, and escape sequences are replaced with their unescaped
// equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}
