// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/mdtypes/internal/httputil"
)

// ReadInput returns the document named by input: an http(s) URL is fetched,
// anything else is read from disk.
func ReadInput(ctx context.Context, input string, log *zap.Logger) (string, error) {
	if httputil.IsURL(input) {
		data, err := httputil.Fetch(ctx, nil, input, log)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", errors.Wrapf(err, "reading input %s", input)
	}
	return string(data), nil
}
