package formatter

// BooleanValueFormatter shows the attribute as it reads after the fix
// instead of the bare suggestion.
type BooleanValueFormatter struct{}

func (f *BooleanValueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{if .FixedLines}}{{fix .FixedLines .Padding .MaxLineNumWidth .StartLine .CommonIndent}}{{else}}{{suggestion .Suggestion .Padding .MaxLineNumWidth .StartLine}}{{end -}}
{{note .Note}}
`
}
