package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/jsxlint/internal/jsx"
	"github.com/gnolang/jsxlint/internal/lints/jsxbool"
	tt "github.com/gnolang/jsxlint/internal/types"
	"github.com/gnolang/jsxlint/lint"
)

// espree output for `<a x y={true} />`
const (
	testSource   = `<a x y={true} />`
	testDocument = `{"type": "Program", "range": [0, 16], "body": [{
  "type": "ExpressionStatement", "range": [0, 16],
  "expression": {"type": "JSXElement", "range": [0, 16],
    "openingElement": {"type": "JSXOpeningElement", "range": [0, 16],
      "name": {"type": "JSXIdentifier", "name": "a", "range": [1, 2]},
      "attributes": [
        {"type": "JSXAttribute", "range": [3, 4],
         "name": {"type": "JSXIdentifier", "name": "x", "range": [3, 4]}, "value": null},
        {"type": "JSXAttribute", "range": [5, 13],
         "name": {"type": "JSXIdentifier", "name": "y", "range": [5, 6]},
         "value": {"type": "JSXExpressionContainer", "range": [7, 13],
           "expression": {"type": "Literal", "value": true, "raw": "true", "range": [8, 12]}}}
      ],
      "selfClosing": true},
    "children": []}}]}`
)

func TestMain(m *testing.M) {
	lint.ProgressWriter = io.Discard
	os.Exit(m.Run())
}

func writeTestPair(t *testing.T, dir string) (source, document string) {
	t.Helper()
	source = filepath.Join(dir, "a.jsx")
	require.NoError(t, os.WriteFile(source, []byte(testSource), 0o644))
	document = jsx.DocumentPath(source)
	require.NoError(t, os.WriteFile(document, []byte(testDocument), 0o644))
	return source, document
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".jsxlint.yaml")
	require.NoError(t, initConfigurationFile(path, false))

	config, err := lint.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "jsxlint", config.Name)

	rule, ok := config.Rules[jsxbool.RuleName]
	require.True(t, ok)
	require.NotNil(t, rule.Severity)
	assert.Equal(t, tt.SeverityWarning, *rule.Severity)

	opts, err := jsxbool.ParseOptions(&rule.Options)
	require.NoError(t, err)
	assert.Equal(t, jsxbool.ModeNever, opts.Mode)

	// the written file is accepted by the engine
	_, err = lint.New(path)
	assert.NoError(t, err)

	assert.Error(t, initConfigurationFile(path, false), "existing file is kept")
	assert.NoError(t, initConfigurationFile(path, true))
}

func TestRunNormalLintProcess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source, _ := writeTestPair(t, dir)

	engine, err := lint.New("")
	require.NoError(t, err)

	var out bytes.Buffer
	err = runNormalLintProcess(context.Background(), zap.NewNop(), engine, []string{dir}, &out, false, "")
	assert.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, out.String(), "jsx-boolean-value")
	assert.Contains(t, out.String(), source+":1:6")
	assert.Contains(t, out.String(), "Value must be omitted for boolean attributes")
	assert.Contains(t, out.String(), "1 | <a x y />")
}

// writeStaleDocument adds a document whose source file is missing.
func writeStaleDocument(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jsx.ast.json"), []byte(testDocument), 0o644))
}

func TestRunNormalLintProcess_PartialFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source, _ := writeTestPair(t, dir)
	writeStaleDocument(t, dir)

	engine, err := lint.New("")
	require.NoError(t, err)

	var out bytes.Buffer
	err = runNormalLintProcess(context.Background(), zap.NewNop(), engine, []string{dir}, &out, false, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, err.Error(), "b.jsx")
	assert.Contains(t, out.String(), source+":1:6")
}

func TestRunNormalLintProcess_IgnoredRule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestPair(t, dir)

	engine, err := lint.New("")
	require.NoError(t, err)
	applyIgnores(zap.NewNop(), engine, jsxbool.RuleName+", other", "")

	var out bytes.Buffer
	err = runNormalLintProcess(context.Background(), zap.NewNop(), engine, []string{dir}, &out, false, "")
	assert.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRunNormalLintProcess_JSONFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source, document := writeTestPair(t, dir)

	engine, err := lint.New("")
	require.NoError(t, err)

	outFile := filepath.Join(dir, "out.json")
	var out bytes.Buffer
	err = runNormalLintProcess(context.Background(), zap.NewNop(), engine, []string{document}, &out, true, outFile)
	assert.ErrorIs(t, err, ErrIssuesFound)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var decoded map[string][]tt.Issue
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded[source], 1)
	assert.Equal(t, "omitBoolean_noMessage", decoded[source][0].MessageID)
	assert.Equal(t, &tt.TextEdit{Start: 6, End: 13, OldText: "={true}"}, decoded[source][0].Fix)
}

func TestRunAutoFix(t *testing.T) {
	t.Parallel()

	t.Run("apply", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		source, _ := writeTestPair(t, dir)

		engine, err := lint.New("")
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, runAutoFix(context.Background(), zap.NewNop(), engine, []string{dir}, &out, false, tt.SeverityInfo))

		content, err := os.ReadFile(source)
		require.NoError(t, err)
		assert.Equal(t, `<a x y />`, string(content))
		assert.Contains(t, out.String(), "Fixed 1 issues in "+source)
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		source, _ := writeTestPair(t, dir)

		engine, err := lint.New("")
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, runAutoFix(context.Background(), zap.NewNop(), engine, []string{source}, &out, true, tt.SeverityInfo))

		content, err := os.ReadFile(source)
		require.NoError(t, err)
		assert.Equal(t, testSource, string(content))
		assert.Contains(t, out.String(), "Would fix issue in "+source+" at line 1")
	})

	t.Run("partial failure", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		source, _ := writeTestPair(t, dir)
		writeStaleDocument(t, dir)

		engine, err := lint.New("")
		require.NoError(t, err)

		var out bytes.Buffer
		err = runAutoFix(context.Background(), zap.NewNop(), engine, []string{dir}, &out, false, tt.SeverityInfo)
		assert.Error(t, err)

		content, err := os.ReadFile(source)
		require.NoError(t, err)
		assert.Equal(t, `<a x y />`, string(content))
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		engine, err := lint.New("")
		require.NoError(t, err)

		err = runAutoFix(context.Background(), zap.NewNop(), engine, []string{filepath.Join(t.TempDir(), "missing")}, io.Discard, false, tt.SeverityInfo)
		assert.Error(t, err)
	})
}

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	writeTestPair(t, dir)

	config := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(config, []byte("rules:\n  jsx-boolean-value:\n    options: [always]\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", config, "lint", "--json", dir})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	assert.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, out.String(), "setBoolean_noMessage")
	assert.NotContains(t, out.String(), "omitBoolean")
}
