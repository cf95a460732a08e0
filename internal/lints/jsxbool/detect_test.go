package jsxbool

import (
	"sort"
	"testing"

	"github.com/gnolang/jsxlint/internal/jsx"
	tt "github.com/gnolang/jsxlint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyAll(src []byte, issues []tt.Issue) []byte {
	edits := make([]tt.TextEdit, 0, len(issues))
	for _, issue := range issues {
		edits = append(edits, *issue.Fix)
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Start > edits[j].Start })
	for _, edit := range edits {
		src = edit.Apply(src)
	}
	return src
}

func TestDetectBooleanValue(t *testing.T) {
	t.Parallel()

	const src = "const a = <Button\n  disabled\n  hidden={true}\n  checked={false}\n  title=\"x\"\n  open={isOpen}\n/>;\n"
	attrs := []jsx.Attribute{
		attributeIn(t, src, "disabled"),
		attributeIn(t, src, "hidden={true}"),
		attributeIn(t, src, "checked={false}"),
		attributeIn(t, src, `title="x"`),
		attributeIn(t, src, "open={isOpen}"),
	}

	tests := []struct {
		name      string
		opts      Options
		wantIDs   []string
		wantLines []int
		wantFixed string
	}{
		{
			name:      "never",
			opts:      Options{Mode: ModeNever},
			wantIDs:   []string{"omitBoolean_noMessage"},
			wantLines: []int{3},
			wantFixed: "const a = <Button\n  disabled\n  hidden\n  checked={false}\n  title=\"x\"\n  open={isOpen}\n/>;\n",
		},
		{
			name:      "always",
			opts:      Options{Mode: ModeAlways},
			wantIDs:   []string{"setBoolean_noMessage"},
			wantLines: []int{2},
			wantFixed: "const a = <Button\n  disabled={true}\n  hidden={true}\n  checked={false}\n  title=\"x\"\n  open={isOpen}\n/>;\n",
		},
		{
			name:      "never with assumeUndefinedIsFalse",
			opts:      Options{Mode: ModeNever, AssumeUndefinedIsFalse: true},
			wantIDs:   []string{"omitPropAndBoolean_noMessage"},
			wantLines: []int{4},
			wantFixed: "const a = <Button\n  disabled\n  hidden={true}\n  \n  title=\"x\"\n  open={isOpen}\n/>;\n",
		},
		{
			name:      "always with never exceptions",
			opts:      Options{Mode: ModeAlways, Never: []string{"hidden"}},
			wantIDs:   []string{"setBoolean", "omitBoolean"},
			wantLines: []int{2, 3},
			wantFixed: "const a = <Button\n  disabled={true}\n  hidden\n  checked={false}\n  title=\"x\"\n  open={isOpen}\n/>;\n",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			file := jsx.NewFile("button.jsx", []byte(src), attrs)
			issues := DetectBooleanValue(file, Resolve(tc.opts), tt.SeverityWarning)
			require.Len(t, issues, len(tc.wantIDs))

			for i, issue := range issues {
				assert.Equal(t, RuleName, issue.Rule)
				assert.Equal(t, "button.jsx", issue.Filename)
				assert.Equal(t, tc.wantIDs[i], issue.MessageID)
				assert.Equal(t, tc.wantLines[i], issue.Start.Line)
				assert.Equal(t, 3, issue.Start.Column)
				assert.Equal(t, tt.SeverityWarning, issue.Severity)
				require.NotNil(t, issue.Fix)
			}

			fixed := applyAll([]byte(src), issues)
			assert.Equal(t, tc.wantFixed, string(fixed))
		})
	}
}

func TestDetectBooleanValueNoAttributes(t *testing.T) {
	t.Parallel()

	file := jsx.NewFile("empty.jsx", []byte("const a = <div />;\n"), nil)
	assert.Empty(t, DetectBooleanValue(file, Resolve(Options{Mode: ModeAlways}), tt.SeverityError))
}
