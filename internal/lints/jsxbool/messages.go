package jsxbool

import "strings"

const noMessageSuffix = "_noMessage"

const exceptionsPlaceholder = "{{exceptionsMessage}}"

var messages = map[string]string{
	"setBoolean":                           "Value must be set for boolean attributes" + exceptionsPlaceholder,
	"setBoolean" + noMessageSuffix:         "Value must be set for boolean attributes",
	"omitBoolean":                          "Value must be omitted for boolean attributes" + exceptionsPlaceholder,
	"omitBoolean" + noMessageSuffix:        "Value must be omitted for boolean attributes",
	"omitPropAndBoolean":                   "Value must be omitted for `false` attributes" + exceptionsPlaceholder,
	"omitPropAndBoolean" + noMessageSuffix: "Value must be omitted for `false` attributes",
}

// MessageID returns the message identifier for a violation, picking the
// _noMessage variant when dc has no exceptions.
func (dc *DecisionContext) MessageID(v Verdict) string {
	if v == VerdictCompliant {
		return ""
	}
	if dc.exceptionsMessage == "" {
		return v.String() + noMessageSuffix
	}
	return v.String()
}

// Message renders the message for a violation.
func (dc *DecisionContext) Message(v Verdict) string {
	tmpl, ok := messages[dc.MessageID(v)]
	if !ok {
		return ""
	}
	return strings.ReplaceAll(tmpl, exceptionsPlaceholder, dc.exceptionsMessage)
}
