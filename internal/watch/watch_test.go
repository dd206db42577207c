package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdtypes/pkg/types"
)

func waitRun(t *testing.T, runs <-chan error) error {
	t.Helper()
	select {
	case err := <-runs:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a run")
		return nil
	}
}

func TestWatcherRerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "api.md")
	require.NoError(t, os.WriteFile(input, []byte("- F: interface Foo {}\n"), 0o644))

	var count atomic.Int32
	w, err := New(input, types.WatchConfig{Debounce: 20 * time.Millisecond}, func(ctx context.Context) error {
		count.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)
	w.runs = make(chan error, 16)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, waitRun(t, w.runs))
	assert.EqualValues(t, 1, count.Load(), "initial run")

	// Unrelated files in the same directory do not trigger a run.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644))

	require.NoError(t, os.WriteFile(input, []byte("- F: interface Foo { a: string }\n"), 0o644))
	require.NoError(t, waitRun(t, w.runs))
	assert.EqualValues(t, 2, count.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherKeepsRunningAfterError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "api.md")
	require.NoError(t, os.WriteFile(input, []byte("# empty\n"), 0o644))

	w, err := New(input, types.WatchConfig{Debounce: 10 * time.Millisecond}, func(ctx context.Context) error {
		return assert.AnError
	}, nil)
	require.NoError(t, err)
	w.runs = make(chan error, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	assert.ErrorIs(t, waitRun(t, w.runs), assert.AnError)
	require.NoError(t, os.WriteFile(input, []byte("# still empty\n"), 0o644))
	assert.ErrorIs(t, waitRun(t, w.runs), assert.AnError)
}

func TestRelevant(t *testing.T) {
	w, err := New("/tmp/docs/api.md", types.WatchConfig{}, func(context.Context) error { return nil }, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultDebounce, w.debounce)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "/tmp/docs/api.md", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "/tmp/docs/api.md", Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: "/tmp/docs/api.md", Op: fsnotify.Rename}, true},
		{"chmod", fsnotify.Event{Name: "/tmp/docs/api.md", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/tmp/docs/other.md", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestNewNilRun(t *testing.T) {
	_, err := New("api.md", types.WatchConfig{}, nil, nil)
	assert.Error(t, err)
}
