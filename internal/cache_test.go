package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnolang/jsxlint/internal/jsx"
	"github.com/gnolang/jsxlint/internal/lints/jsxbool"
	tt "github.com/gnolang/jsxlint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	tmpDir := createTempDir(t, "cache-test")

	cacheDir := filepath.Join(tmpDir, "cache")
	cache, err := NewCache(cacheDir)
	require.NoError(t, err)

	issues := []tt.Issue{
		{
			Rule:      "jsx-boolean-value",
			Category:  "style",
			Filename:  "input.jsx",
			Message:   "Value must be omitted for boolean attributes",
			MessageID: "omitBoolean_noMessage",
			Severity:  tt.SeverityWarning,
			Fix:       &tt.TextEdit{Start: 23, End: 30, OldText: "={true}"},
		},
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		doc := writeDocumentPair(t, tmpDir, "saved.jsx")

		require.NoError(t, cache.Set(doc, issues))

		loaded, found := cache.Get(doc)
		assert.True(t, found)
		assert.Equal(t, issues, loaded)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.jsx.ast.json")
		assert.False(t, found)
	})

	t.Run("SourceModified", func(t *testing.T) {
		doc := writeDocumentPair(t, tmpDir, "modified.jsx")
		require.NoError(t, cache.Set(doc, issues))

		require.NoError(t, os.WriteFile(jsx.SourcePath(doc), []byte(`<input  disabled checked={true} />`), 0o644))

		_, found := cache.Get(doc)
		assert.False(t, found)
	})

	t.Run("DocumentModified", func(t *testing.T) {
		doc := writeDocumentPair(t, tmpDir, "regenerated.jsx")
		require.NoError(t, cache.Set(doc, issues))

		require.NoError(t, os.WriteFile(doc, []byte(`{"type": "Program", "body": []}`), 0o644))

		_, found := cache.Get(doc)
		assert.False(t, found)
	})

	t.Run("Expired", func(t *testing.T) {
		doc := writeDocumentPair(t, tmpDir, "expired.jsx")
		require.NoError(t, cache.Set(doc, issues))

		cache.SetMaxAge(time.Nanosecond)
		defer cache.SetMaxAge(defaultMaxAge)
		time.Sleep(time.Millisecond)

		_, found := cache.Get(doc)
		assert.False(t, found)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		doc := writeDocumentPair(t, tmpDir, "invalidated.jsx")
		require.NoError(t, cache.Set(doc, issues))

		cache.InvalidateAll()

		_, found := cache.Get(doc)
		assert.False(t, found)
	})
}

func TestCachePersistence(t *testing.T) {
	t.Parallel()

	tmpDir := createTempDir(t, "cache-persist")
	cacheDir := filepath.Join(tmpDir, "cache")
	config := filepath.Join(tmpDir, ".jsxlint.yaml")
	require.NoError(t, os.WriteFile(config, []byte("rules: {}\n"), 0o644))

	doc := writeDocumentPair(t, tmpDir, "input.jsx")
	issues := []tt.Issue{{Rule: "jsx-boolean-value", Filename: "input.jsx"}}

	cache, err := NewCache(cacheDir, config)
	require.NoError(t, err)
	require.NoError(t, cache.Set(doc, issues))

	reopened, err := NewCache(cacheDir, config)
	require.NoError(t, err)
	loaded, found := reopened.Get(doc)
	assert.True(t, found)
	assert.Equal(t, issues, loaded)

	// a configuration change invalidates every entry
	require.NoError(t, os.WriteFile(config, []byte("rules:\n  jsx-boolean-value:\n    severity: off\n"), 0o644))
	changed, err := NewCache(cacheDir, config)
	require.NoError(t, err)
	_, found = changed.Get(doc)
	assert.False(t, found)
}

func TestEngine_RunWithCache(t *testing.T) {
	t.Parallel()

	dir := createTempDir(t, "engine_cache")
	doc := writeDocumentPair(t, dir, "input.jsx")

	cache, err := NewCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	engine, err := NewEngine(nil, jsx.OffsetUTF16)
	require.NoError(t, err)
	engine.SetCache(cache)

	first, err := engine.Run(doc)
	require.NoError(t, err)

	cached, found := cache.Get(doc)
	require.True(t, found)
	assert.Equal(t, first, cached)

	second, err := engine.Run(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEngine_RunWithCacheIgnoredRule(t *testing.T) {
	t.Parallel()

	dir := createTempDir(t, "engine_cache_ignore")
	doc := writeDocumentPair(t, dir, "input.jsx")
	cacheDir := filepath.Join(dir, "cache")

	newEngine := func(ignored ...string) *Engine {
		cache, err := NewCache(cacheDir)
		require.NoError(t, err)
		engine, err := NewEngine(nil, jsx.OffsetUTF16)
		require.NoError(t, err)
		engine.SetCache(cache)
		for _, rule := range ignored {
			engine.IgnoreRule(rule)
		}
		return engine
	}

	issues, err := newEngine(jsxbool.RuleName).Run(doc)
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = newEngine().Run(doc)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, jsxbool.RuleName, issues[0].Rule)

	issues, err = newEngine(jsxbool.RuleName).Run(doc)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
