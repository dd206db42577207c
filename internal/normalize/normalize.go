// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize rewrites an extracted declaration into standalone,
// exported form.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// listPrefix matches the list marker and optional "Label:" at the very
	// start of the text. It is anchored without (?m) so only the first line
	// can match.
	listPrefix = regexp.MustCompile(`^\s*-\s*(?:[\w\d_]+\s*:\s*)?`)

	exportPrefix = regexp.MustCompile(`^export\s+`)
	keyword      = regexp.MustCompile(`^(interface|enum|type)\s+`)

	// optionalField matches "name?:" with optional space before the marker.
	optionalField = regexp.MustCompile(`(\b\w+)\s*\?:`)
)

// Code returns the normalized form of one extracted declaration:
// list decoration stripped, export qualifier present, and optional field
// markers removed. Optional fields become required; this is intentional.
func Code(raw string) string {
	cleaned := strings.TrimSpace(listPrefix.ReplaceAllLiteralString(raw, ""))

	if !exportPrefix.MatchString(cleaned) {
		cleaned = keyword.ReplaceAllString(cleaned, "export $1 ")
	}

	return optionalField.ReplaceAllString(cleaned, "$1:")
}
