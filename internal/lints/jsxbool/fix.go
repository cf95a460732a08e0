package jsxbool

import (
	"github.com/gnolang/jsxlint/internal/jsx"
	tt "github.com/gnolang/jsxlint/internal/types"
)

const explicitTrue = "={true}"

// BuildFix returns the single edit that resolves verdict v on attr. The
// edit only depends on the attribute's ranges; src is used to fill the
// OldText guard of deletions and may be nil.
func BuildFix(attr *jsx.Attribute, v Verdict, src []byte) (tt.TextEdit, bool) {
	var edit tt.TextEdit
	switch v {
	case VerdictSetBoolean:
		edit = tt.TextEdit{
			Start:   attr.Range.End,
			End:     attr.Range.End,
			NewText: explicitTrue,
		}
	case VerdictOmitBoolean:
		if attr.Value == nil {
			return edit, false
		}
		edit = tt.TextEdit{Start: attr.NameRange.End, End: attr.Value.Range.End}
	case VerdictOmitPropAndBoolean:
		if attr.Value == nil {
			return edit, false
		}
		edit = tt.TextEdit{Start: attr.NameRange.Start, End: attr.Value.Range.End}
	default:
		return edit, false
	}

	if !edit.IsInsertion() && src != nil && edit.Start >= 0 && edit.End <= len(src) && edit.Start <= edit.End {
		edit.OldText = string(src[edit.Start:edit.End])
	}
	return edit, true
}

// Suggestion is the attribute text after the fix, shown next to the issue.
func Suggestion(attr *jsx.Attribute, v Verdict) string {
	switch v {
	case VerdictSetBoolean:
		return attr.Name + explicitTrue
	case VerdictOmitBoolean:
		return attr.Name
	}
	return ""
}
