// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shapes shared by the extraction pipeline stages
// and the configuration each stage reads.
package types

import (
	"regexp"
)

// Kind identifies which declaration keyword anchored an extracted block.
type Kind string

const (
	KindInterface Kind = "interface"
	KindEnum      Kind = "enum"
	KindType      Kind = "type"
)

// kindPattern finds the first declaration keyword in normalized code.
var kindPattern = regexp.MustCompile(`^(?:export\s+)?(interface|enum|type)\b`)

// KindOf returns the declaration kind of normalized code, or "" when the code
// does not start with a declaration keyword.
func KindOf(code string) Kind {
	m := kindPattern.FindStringSubmatch(code)
	if m == nil {
		return ""
	}
	return Kind(m[1])
}

// ExtractedType is one declaration found in the input markdown.
type ExtractedType struct {
	// Name is the declared identifier.
	Name string `json:"name" yaml:"name"`

	// Code is the source span from the list marker through the balanced
	// closing brace, trimmed of surrounding whitespace.
	Code string `json:"code" yaml:"code"`

	// Line is the 1-based line of the span start in the input.
	Line int `json:"line" yaml:"line"`
}

// TypeFile is one generated output file.
type TypeFile struct {
	Name       string   `json:"name" yaml:"name"`
	Path       string   `json:"path" yaml:"path"`
	Content    string   `json:"content" yaml:"content"`
	References []string `json:"references" yaml:"references"`
}

// IndexFile re-exports every generated TypeFile.
type IndexFile struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
}
