package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDecodeDocument(t *testing.T) {
	doc, err := decodeDocument(".json", []byte(`{"a": 1, "b": [true, null]}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1), "b": []any{true, nil}}, doc)

	doc, err = decodeDocument(".yaml", []byte("a: 1\nb: [x, y]\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": []any{"x", "y"}}, doc)

	doc, err = decodeDocument("", []byte("name: plain\n"))
	require.NoError(t, err, "unknown extension falls back to YAML")
	assert.Equal(t, map[string]any{"name": "plain"}, doc)

	_, err = decodeDocument(".json", []byte(`{`))
	require.Error(t, err)
}

func TestLoadDocument_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - id: 1\n  - id: 2\n"), 0o600))
	doc, err := loadDocument(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"items": []any{map[string]any{"id": 1}, map[string]any{"id": 2}}}, doc)

	_, err = loadDocument(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTakeSnapshot(t *testing.T) {
	s := takeSnapshot()
	assert.NotEmpty(t, s.GoVersion)
	assert.Positive(t, s.NumCPU)
	assert.NotZero(t, s.Mem.Sys)
}

func TestLoadDocument_WarnsOnDuplicateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1, "a": 2, "b": {"c": [1, {"d": 0, "d": 1}]}}`), 0o600))
	core, logs := observer.New(zap.WarnLevel)

	doc, err := loadDocument(path, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, float64(2), doc.(map[string]any)["a"])

	entries := logs.FilterMessage("duplicate keys in document").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []any{"/a", "/b/c/1/d"}, entries[0].ContextMap()["pointers"])
}

func TestDuplicateKeys(t *testing.T) {
	dups, err := duplicateKeys([]byte(`[{"x": 1}, {"x": 1, "y": [], "y": {}}, "x"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/1/y"}, dups)

	dups, err = duplicateKeys([]byte(`{"a/b": 1, "a/b": 2}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/a~1b"}, dups)

	_, err = duplicateKeys([]byte(`{"a": `))
	assert.Error(t, err)
}
