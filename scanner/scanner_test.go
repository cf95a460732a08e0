package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectScanner(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	files := map[string]string{
		"Button.jsx":                      "<button disabled />",
		"Button.jsx.ast.json":             `{"type": "Program"}`,
		"data.json":                       `{}`,
		".ast.json":                       `{}`,
		"subdir/Modal.tsx.ast.json":       `{"type": "File"}`,
		"node_modules/lib/x.jsx.ast.json": `{"type": "Program"}`,
		"build/out/Modal.jsx.ast.json":    `{"type": "Program"}`,
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		err := os.MkdirAll(filepath.Dir(fullPath), 0o755)
		require.NoError(t, err)
		err = os.WriteFile(fullPath, []byte(content), 0o644)
		require.NoError(t, err)
	}

	scanner := New(tempDir, ".ast.json").SkipDir("build")
	scannedFiles, err := scanner.Scan()
	require.NoError(t, err)

	paths := make([]string, len(scannedFiles))
	for i, file := range scannedFiles {
		paths[i] = file.Path
		assert.Greater(t, file.Size, int64(0), "File size should be greater than 0")
	}

	assert.Equal(t, []string{
		filepath.Join(tempDir, "Button.jsx.ast.json"),
		filepath.Join(tempDir, "subdir/Modal.tsx.ast.json"),
	}, paths)
}

func TestScannerWithoutSuffixes(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "b.jsx"), []byte("b"), 0o644))

	scannedFiles, err := New(tempDir).Scan()
	require.NoError(t, err)
	assert.Len(t, scannedFiles, 2)
}

func TestScannerMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := New(filepath.Join(t.TempDir(), "missing"), ".ast.json").Scan()
	assert.Error(t, err)
}
