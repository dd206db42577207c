// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"
)

// Export is the document written by ExportYAML and ExportJSON.
type Export struct {
	Source       string  `json:"source" yaml:"source"`
	Declarations []Entry `json:"declarations" yaml:"declarations"`
}

const exportLimit = 100000

// ExportYAML writes the catalog to <dir>/export.yaml and returns the path.
// It supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.yaml")
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "marshaling YAML")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// ExportJSON writes the catalog to <dir>/export.json and returns the path.
// It supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.json")
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshaling JSON")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

func (s *Store) export(ctx context.Context, opts QueryOptions) (Export, error) {
	opts.MaxResults = exportLimit
	entries, err := s.Retrieve(ctx, opts)
	if err != nil {
		return Export{}, errors.Wrap(err, "querying for export")
	}
	source, err := s.Source(ctx)
	if err != nil {
		return Export{}, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return Export{Source: source, Declarations: entries}, nil
}
