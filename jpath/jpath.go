// Copyright (C) 2024 The jlens Authors. All Rights Reserved.

// Package jpath implements a minimal JSONPath expression parser for the
// subset of the grammar that resolves to a single location in a syntax
// tree: member steps and index subscripts.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

	 expr = root steps
	 root = "$"
	steps = step [steps]
	 step = "." name
	 step = "[" INDEX "]"
	 step = "[" "'" QTEXT "'" "]"
	 name = WORD

	 WORD = RE `\w+`
	QTEXT = RE `[^']*`
	INDEX = RE `-?\d+`

Wildcards, recursive descent, slices, filters and scripts from the
wider JSONPath drafts address more than one location and are rejected
with an error.
*/

// A Step is a single step of a path: either a member key or an array
// index.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Step) String() string {
	if s.IsIndex {
		return fmt.Sprintf("[%d]", s.Index)
	}
	if wordRE.FindString(s.Key) == s.Key && s.Key != "" {
		return "." + s.Key
	}
	return fmt.Sprintf("['%s']", s.Key)
}

// A Path is a parsed path expression.
type Path []Step

// Parse parses s as a path expression.
func Parse(s string) (Path, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var path Path
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, err
		}
		path = append(path, step)
		t = rest
	}
	return path, nil
}

func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, s := range p {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Args renders the path as traversal arguments: a string for each
// member step and an int for each index step.
func (p Path) Args() []any {
	args := make([]any, len(p))
	for i, s := range p {
		if s.IsIndex {
			args[i] = s.Index
		} else {
			args[i] = s.Key
		}
	}
	return args
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if strings.HasPrefix(s, "..") {
		return Step{}, s, errors.New("recursive descent is not supported")
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		if strings.HasPrefix(t, "*") {
			return Step{}, s, errors.New("wildcards are not supported")
		}
		name := wordRE.FindString(t)
		if name == "" {
			return Step{}, s, errors.New("invalid member name")
		}
		return Step{Key: name}, t[len(name):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		switch {
		case strings.HasPrefix(t, "?(") || strings.HasPrefix(t, "("):
			return Step{}, s, errors.New("filters and scripts are not supported")
		case strings.HasPrefix(t, "*"):
			return Step{}, s, errors.New("wildcards are not supported")
		}
		if m := indexRE.FindString(t); m != "" {
			u, ok := strings.CutPrefix(t[len(m):], "]")
			if !ok {
				return Step{}, t, errors.New("missing close bracket")
			}
			n, err := strconv.Atoi(m)
			if err != nil {
				return Step{}, t, fmt.Errorf("invalid index: %w", err)
			}
			return Step{Index: n, IsIndex: true}, u, nil
		}
		if m := quoteRE.FindStringSubmatch(t); m != nil {
			u, ok := strings.CutPrefix(t[len(m[0]):], "]")
			if !ok {
				return Step{}, t, errors.New("missing close bracket")
			}
			return Step{Key: m[1]}, u, nil
		}
		return Step{}, t, errors.New("invalid subscript")
	}
	return Step{}, s, errors.New("invalid path step")
}

var (
	wordRE  = regexp.MustCompile(`^\w+`)
	indexRE = regexp.MustCompile(`^-?\d+`)
	quoteRE = regexp.MustCompile(`^'([^']*)'`)
)
