// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/mdtypes/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is a case-insensitive substring matched against names and code.
	Query string

	// Kind filters by declaration kind.
	Kind types.Kind

	// References keeps only declarations that import this name.
	References string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search term or filter.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Kind == "" && q.References == ""
}

// likeEscaper escapes LIKE wildcards so Query matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Retrieve returns matching declarations in document order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT d.position, d.name, d.kind, d.line, d.path, d.code FROM declarations d WHERE 1=1`)

	if opts.Query != "" {
		pattern := "%" + likeEscaper.Replace(opts.Query) + "%"
		qb.WriteString(` AND (d.name LIKE ? ESCAPE '\' OR d.code LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if opts.Kind != "" {
		qb.WriteString(` AND d.kind = ?`)
		args = append(args, string(opts.Kind))
	}
	if opts.References != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM refs r WHERE r.from_name = d.name AND r.to_name = ?)`)
		args = append(args, opts.References)
	}

	qb.WriteString(` ORDER BY d.position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying catalog")
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var (
			e    Entry
			kind string
		)
		if err := rows.Scan(&e.Position, &e.Name, &kind, &e.Line, &e.Path, &e.Code); err != nil {
			return nil, errors.Wrap(err, "scanning declaration")
		}
		e.Kind = types.Kind(kind)
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating declarations")
	}

	for i := range results {
		refs, err := s.references(ctx, results[i].Name)
		if err != nil {
			return nil, err
		}
		results[i].References = refs
	}
	return results, nil
}

// references returns the imports of name in their original order.
func (s *Store) references(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT to_name FROM refs WHERE from_name = ? ORDER BY ord`, name)
	if err != nil {
		return nil, errors.Wrapf(err, "querying references of %s", name)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, errors.Wrap(err, "scanning reference")
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
