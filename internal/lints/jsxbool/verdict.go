package jsxbool

import "github.com/gnolang/jsxlint/internal/jsx"

// Verdict is the outcome of judging one attribute. At most one violation
// applies to an attribute.
type Verdict int

const (
	VerdictCompliant Verdict = iota
	// VerdictSetBoolean: shorthand where an explicit value is required.
	VerdictSetBoolean
	// VerdictOmitBoolean: {true} where the shorthand is required.
	VerdictOmitBoolean
	// VerdictOmitPropAndBoolean: {false} where an absent attribute means false.
	VerdictOmitPropAndBoolean
)

func (v Verdict) String() string {
	switch v {
	case VerdictCompliant:
		return "compliant"
	case VerdictSetBoolean:
		return "setBoolean"
	case VerdictOmitBoolean:
		return "omitBoolean"
	case VerdictOmitPropAndBoolean:
		return "omitPropAndBoolean"
	default:
		return "unknown"
	}
}

// Evaluate judges attr under dc. Attributes without a name, and values
// other than shorthand or a literal {true}/{false}, are always compliant.
func (dc *DecisionContext) Evaluate(attr *jsx.Attribute) Verdict {
	if attr == nil || attr.Name == "" {
		return VerdictCompliant
	}

	if attr.IsShorthand() {
		if dc.EffectiveIsAlways(attr.Name) {
			return VerdictSetBoolean
		}
		return VerdictCompliant
	}

	literal, ok := attr.BooleanLiteral()
	if !ok || !dc.EffectiveIsNever(attr.Name) {
		return VerdictCompliant
	}

	switch {
	case literal && !dc.assumeUndefinedIsFalse:
		return VerdictOmitBoolean
	case !literal && dc.assumeUndefinedIsFalse:
		return VerdictOmitPropAndBoolean
	}
	return VerdictCompliant
}
