package writer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/mdtypes/internal/resolve"
	"github.com/pdiddy/mdtypes/pkg/types"
)

// --- Dedupe ---

func TestDedupe(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	candidates := []types.ExtractedType{
		{Name: "Foo", Code: "first", Line: 1},
		{Name: "Bar", Code: "bar", Line: 5},
		{Name: "Foo", Code: "second", Line: 9},
	}
	unique, skipped := Dedupe(candidates, zap.New(core))

	require.Len(t, unique, 2)
	assert.Equal(t, "Foo", unique[0].Name)
	assert.Equal(t, "first", unique[0].Code, "first occurrence wins")
	assert.Equal(t, "Bar", unique[1].Name)

	require.Len(t, skipped, 1)
	assert.Equal(t, "second", skipped[0].Code)

	entries := logs.FilterMessage("duplicate type skipped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Foo", entries[0].ContextMap()["name"])
	assert.EqualValues(t, 9, entries[0].ContextMap()["line"])
}

func TestDedupeNilLogger(t *testing.T) {
	unique, skipped := Dedupe([]types.ExtractedType{{Name: "A"}, {Name: "A"}}, nil)
	assert.Len(t, unique, 1)
	assert.Len(t, skipped, 1)
}

// --- BuildTypeFile ---

func TestBuildTypeFile(t *testing.T) {
	cfg := types.DefaultGeneratorConfig()
	reg := resolve.NewRegistry([]string{"Foo", "Bar", "Baz"})

	tests := []struct {
		name     string
		in       types.ExtractedType
		wantPath string
		want     string
		wantRefs []string
	}{
		{
			name:     "with references",
			in:       types.ExtractedType{Name: "Foo", Code: "- Field: interface Foo {\n  bar?: Bar;\n  baz: Baz[];\n}"},
			wantPath: "Foo.ts",
			want:     "import { Bar, Baz } from \"@\";\n\nexport interface Foo {\n  bar: Bar;\n  baz: Baz[];\n}\n",
			wantRefs: []string{"Bar", "Baz"},
		},
		{
			name:     "without references",
			in:       types.ExtractedType{Name: "Bar", Code: "- Field: interface Bar {\n  baz: string;\n}"},
			wantPath: "Bar.ts",
			want:     "export interface Bar {\n  baz: string;\n}\n",
		},
		{
			name:     "self reference is not imported",
			in:       types.ExtractedType{Name: "Baz", Code: "- Field: interface Baz {\n  next?: Baz;\n}"},
			wantPath: "Baz.ts",
			want:     "export interface Baz {\n  next: Baz;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTypeFile(tt.in, reg, cfg)
			assert.Equal(t, tt.in.Name, got.Name)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.want, got.Content)
			assert.Equal(t, tt.wantRefs, got.References)
		})
	}
}

func TestBuildTypeFileCustomModulePath(t *testing.T) {
	cfg := types.DefaultGeneratorConfig()
	cfg.ModulePath = "@shop/pixels"
	cfg.Extension = "d.ts"
	reg := resolve.NewRegistry([]string{"Foo", "Bar"})

	got := BuildTypeFile(types.ExtractedType{Name: "Foo", Code: "- F: interface Foo { b: Bar }"}, reg, cfg)
	assert.Equal(t, "Foo.d.ts", got.Path)
	assert.Equal(t, "import { Bar } from \"@shop/pixels\";\n\nexport interface Foo { b: Bar }\n", got.Content)
}

// --- BuildIndex ---

func TestBuildIndex(t *testing.T) {
	got := BuildIndex([]string{"Foo", "Bar"}, types.DefaultGeneratorConfig())
	assert.Equal(t, "index.ts", got.Path)
	assert.Equal(t, "export * from \"./Foo\";\nexport * from \"./Bar\";\n", got.Content)
}

func TestCheckCollision(t *testing.T) {
	cfg := types.DefaultGeneratorConfig()
	require.NoError(t, CheckCollision([]string{"Foo", "Index"}, cfg))

	err := CheckCollision([]string{"Foo", "index"}, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexCollision))
}

// --- Write ---

func TestWriteOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	files := []types.TypeFile{{Name: "Foo", Path: "Foo.ts", Content: "export interface Foo {}\n"}}
	index := types.IndexFile{Path: "index.ts", Content: "export * from \"./Foo\";\n"}

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Foo.ts"), []byte("old content that is longer than the new one\n"), 0o644))

	require.NoError(t, Write(context.Background(), dir, files, index, nil))
	require.NoError(t, Write(context.Background(), dir, files, index, nil))

	got, err := os.ReadFile(filepath.Join(dir, "Foo.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export interface Foo {}\n", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export * from \"./Foo\";\n", string(got))
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Write(ctx, t.TempDir(), []types.TypeFile{{Path: "Foo.ts"}}, types.IndexFile{Path: "index.ts"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// --- Prune ---

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Foo.ts", "Old.ts", "index.ts", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ts"), 0o755))

	stale, err := Stale(dir, "ts", []string{"Foo.ts", "index.ts"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Old.ts"}, stale)

	removed, err := Prune(dir, "ts", []string{"Foo.ts", "index.ts"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Old.ts"}, removed)

	assert.NoFileExists(t, filepath.Join(dir, "Old.ts"))
	assert.FileExists(t, filepath.Join(dir, "Foo.ts"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
	assert.DirExists(t, filepath.Join(dir, "sub.ts"))
}

func TestStaleMissingDir(t *testing.T) {
	stale, err := Stale(filepath.Join(t.TempDir(), "missing"), "ts", nil)
	require.NoError(t, err)
	assert.Empty(t, stale)
}
