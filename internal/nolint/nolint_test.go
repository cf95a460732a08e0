package nolint

import (
	"go/token"
	"strings"
	"testing"

	"github.com/gnolang/jsxlint/internal/jsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileWithComments builds a file whose comments are every /* */ and //
// span of src, the way a parser would list them.
func fileWithComments(t *testing.T, src string) *jsx.File {
	t.Helper()
	file := jsx.NewFile("test.jsx", []byte(src), nil)
	for i := 0; i < len(src); i++ {
		switch {
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i:], "*/")
			require.GreaterOrEqual(t, end, 0)
			file.Comments = append(file.Comments, jsx.Comment{
				Text:  src[i+2 : i+end],
				Range: jsx.Range{Start: i, End: i + end + 2},
				Block: true,
			})
			i += end + 1
		case strings.HasPrefix(src[i:], "//"):
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src) - i
			}
			file.Comments = append(file.Comments, jsx.Comment{
				Text:  src[i+2 : i+end],
				Range: jsx.Range{Start: i, End: i + end},
			})
			i += end
		}
	}
	return file
}

func TestParseNolintRules(t *testing.T) {
	t.Parallel()
	input := "rule1, react/rule2,rule3,"
	expected := []string{"rule1", "rule2", "rule3"}
	result := parseIgnoreRuleNames(input)
	assert.Len(t, result, len(expected))
	for _, rule := range expected {
		assert.Contains(t, result, rule)
	}
}

func TestParseDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		kind    directiveKind
		rules   []string
		wantErr bool
	}{
		{text: " jsxlint-disable-next-line ", kind: disableNextLine},
		{text: " eslint-disable-next-line react/jsx-boolean-value ", kind: disableNextLine, rules: []string{"jsx-boolean-value"}},
		{text: "jsxlint-disable-line a, b -- legacy markup", kind: disableLine, rules: []string{"a", "b"}},
		{text: "* jsxlint-disable jsx-boolean-value", kind: disable, rules: []string{"jsx-boolean-value"}},
		{text: "jsxlint-enable", kind: enable},
		{text: "jsxlint-disabled", wantErr: true},
		{text: "just a comment", wantErr: true},
		{text: "prettier-ignore", wantErr: true},
	}

	for _, tc := range tests {
		d, err := parseDirective(tc.text)
		if tc.wantErr {
			assert.Error(t, err, tc.text)
			continue
		}
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.kind, d.kind, tc.text)
		assert.Len(t, d.rules, len(tc.rules), tc.text)
		for _, rule := range tc.rules {
			assert.Contains(t, d.rules, rule, tc.text)
		}
	}
}

func TestIsNolint(t *testing.T) {
	t.Parallel()

	src := `<form>
  {/* jsxlint-disable-next-line jsx-boolean-value */}
  <input disabled={true} />
  <input hidden={true} /> {/* eslint-disable-line */}
  {/* jsxlint-disable jsx-boolean-value */}
  <input a={true} />
  <input b={true} />
  {/* jsxlint-enable jsx-boolean-value */}
  <input c={true} />
  {/* jsxlint-disable other-rule */}
  <input d={true} />
</form>`

	manager := ParseComments(fileWithComments(t, src))
	require.NotNil(t, manager)

	tests := []struct {
		line int
		rule string
		want bool
	}{
		{line: 1, rule: "jsx-boolean-value", want: false},
		{line: 3, rule: "jsx-boolean-value", want: true},
		{line: 3, rule: "other-rule", want: false},
		{line: 4, rule: "anything", want: true},
		{line: 6, rule: "jsx-boolean-value", want: true},
		{line: 7, rule: "jsx-boolean-value", want: true},
		{line: 9, rule: "jsx-boolean-value", want: false},
		{line: 11, rule: "jsx-boolean-value", want: false},
		{line: 11, rule: "other-rule", want: true},
		{line: 12, rule: "other-rule", want: true},
	}

	for _, tc := range tests {
		pos := token.Position{Filename: "test.jsx", Line: tc.line, Column: 3}
		assert.Equal(t, tc.want, manager.IsNolint(pos, tc.rule), "line %d rule %s", tc.line, tc.rule)
	}

	assert.False(t, manager.IsNolint(token.Position{Filename: "other.jsx", Line: 3}, "jsx-boolean-value"))
}

func TestEnableWithoutRulesClosesAllBlocks(t *testing.T) {
	t.Parallel()

	src := "/* jsxlint-disable a */\n/* jsxlint-disable b */\n<x y />\n/* jsxlint-enable */\n<x y />"
	manager := ParseComments(fileWithComments(t, src))

	assert.True(t, manager.IsNolint(token.Position{Filename: "test.jsx", Line: 3}, "a"))
	assert.True(t, manager.IsNolint(token.Position{Filename: "test.jsx", Line: 3}, "b"))
	assert.False(t, manager.IsNolint(token.Position{Filename: "test.jsx", Line: 5}, "a"))
	assert.False(t, manager.IsNolint(token.Position{Filename: "test.jsx", Line: 5}, "b"))
}
