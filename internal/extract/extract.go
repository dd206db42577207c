// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract locates type declarations embedded in markdown list items.
// Each declaration runs from its list marker through the closing brace that
// balances the first opening brace after the declaration header.
package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/mdtypes/pkg/types"
)

// headerPattern matches a list item that opens a declaration, with an optional
// "Label:" prefix and an optional export keyword, such as
// "- Field: export interface Name".
var headerPattern = regexp.MustCompile(`(?m)^\s*-\s*(?:[\w\d_]+\s*:\s*)?(?:export\s+)?(interface|enum|type)\s+(\w+)`)

// Options tunes the brace walk.
type Options struct {
	// SkipStringLiterals ignores braces inside '...', "..." and `...`
	// literals and inside // and /* */ comments. Quotes inside comments do
	// not open literals. Off by default, matching plain brace counting.
	SkipStringLiterals bool
}

// Extract returns every declaration candidate in source order. Duplicate names
// are kept; deduplication belongs to the writer.
func Extract(markdown string, opts Options) []types.ExtractedType {
	var out []types.ExtractedType
	lines := newLineIndex(markdown)

	for _, m := range headerPattern.FindAllStringSubmatchIndex(markdown, -1) {
		start, headerEnd := m[0], m[1]
		name := markdown[m[4]:m[5]]

		end := balancedEnd(markdown, headerEnd, opts)
		code := strings.TrimSpace(markdown[start:end])

		out = append(out, types.ExtractedType{
			Name: name,
			Code: code,
			Line: lines.lineOf(start + leadingSpace(markdown[start:end])),
		})
	}
	return out
}

// walkState is the brace walk state.
type walkState int

const (
	scanningForOpen walkState = iota
	inside
)

// skipState tracks text whose braces do not count while inside a body.
type skipState int

const (
	none skipState = iota
	quoted
	lineComment
	blockComment
)

// balancedEnd returns the offset one past the brace that closes the first
// "{" at or after from. When no "{" follows, or the braces never balance,
// the walk consumes the rest of the document and len(s) is returned.
func balancedEnd(s string, from int, opts Options) int {
	state := scanningForOpen
	skip := none
	depth := 0
	var quote byte

	for i := from; i < len(s); i++ {
		ch := s[i]

		switch skip {
		case quoted:
			switch ch {
			case '\\':
				i++
			case quote:
				skip = none
			}
			continue
		case lineComment:
			if ch == '\n' {
				skip = none
			}
			continue
		case blockComment:
			if ch == '*' && i+1 < len(s) && s[i+1] == '/' {
				skip = none
				i++
			}
			continue
		}

		switch state {
		case scanningForOpen:
			if ch == '{' {
				state = inside
				depth = 1
			}
		case inside:
			switch ch {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i + 1
				}
			case '\'', '"', '`':
				if opts.SkipStringLiterals {
					skip, quote = quoted, ch
				}
			case '/':
				if !opts.SkipStringLiterals || i+1 >= len(s) {
					continue
				}
				switch s[i+1] {
				case '/':
					skip = lineComment
					i++
				case '*':
					skip = blockComment
					i++
				}
			}
		}
	}
	return len(s)
}

// leadingSpace counts whitespace bytes before the first non-space byte.
func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t\r\n"))
}
