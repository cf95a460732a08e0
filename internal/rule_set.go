package internal

import (
	"github.com/gnolang/jsxlint/internal/jsx"
	"github.com/gnolang/jsxlint/internal/lints/jsxbool"
	tt "github.com/gnolang/jsxlint/internal/types"
	"gopkg.in/yaml.v3"
)

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given file and returns a slice of Issues.
	Check(file *jsx.File) ([]tt.Issue, error)

	// Configure decodes and validates the rule's options node.
	Configure(options *yaml.Node) error

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

// JSXBooleanValueRule enforces shorthand or explicit notation for boolean
// attributes.
type JSXBooleanValueRule struct {
	severity tt.Severity
	options  jsxbool.Options
}

func NewJSXBooleanValueRule() LintRule {
	return &JSXBooleanValueRule{
		severity: tt.SeverityWarning,
		options:  jsxbool.Options{Mode: jsxbool.ModeNever},
	}
}

// Check resolves a fresh decision context for every file, so results only
// depend on the rule options and the file itself.
func (r *JSXBooleanValueRule) Check(file *jsx.File) ([]tt.Issue, error) {
	dc := jsxbool.Resolve(r.options)
	return jsxbool.DetectBooleanValue(file, dc, r.severity), nil
}

func (r *JSXBooleanValueRule) Configure(options *yaml.Node) error {
	opts, err := jsxbool.ParseOptions(options)
	if err != nil {
		return err
	}
	r.options = opts
	return nil
}

func (r *JSXBooleanValueRule) Name() string {
	return jsxbool.RuleName
}

func (r *JSXBooleanValueRule) Severity() tt.Severity {
	return r.severity
}

func (r *JSXBooleanValueRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}
