// Package jsxbool implements the jsx-boolean-value rule: boolean attributes
// must be written either in shorthand (`disabled`) or explicitly
// (`disabled={true}`), as configured, with per-attribute exceptions.
package jsxbool

import (
	"github.com/gnolang/jsxlint/internal/jsx"
	tt "github.com/gnolang/jsxlint/internal/types"
)

const (
	RuleName = "jsx-boolean-value"
	category = "style"
)

// DetectBooleanValue reports every attribute of file whose notation does
// not match dc. Each issue carries exactly one fix.
func DetectBooleanValue(file *jsx.File, dc *DecisionContext, severity tt.Severity) []tt.Issue {
	var issues []tt.Issue
	lines := file.Lines()

	for i := range file.Attributes {
		attr := &file.Attributes[i]
		verdict := dc.Evaluate(attr)
		if verdict == VerdictCompliant {
			continue
		}

		edit, ok := BuildFix(attr, verdict, file.Source)
		if !ok {
			continue
		}

		issues = append(issues, tt.Issue{
			Rule:       RuleName,
			Category:   category,
			Filename:   file.Filename,
			Message:    dc.Message(verdict),
			MessageID:  dc.MessageID(verdict),
			Suggestion: Suggestion(attr, verdict),
			Note:       note(verdict),
			Start:      lines.Position(attr.Range.Start),
			End:        lines.Position(attr.Range.End),
			Severity:   severity,
			Fix:        &edit,
		})
	}

	return issues
}

func note(v Verdict) string {
	if v == VerdictOmitPropAndBoolean {
		return "an absent attribute is treated as false, remove the attribute"
	}
	return ""
}
