// Package nolint handles comments that suppress lint issues in JSX sources.
//
// Both jsxlint and ESLint directive spellings are understood, so sources
// already annotated for eslint-plugin-react keep their suppressions:
//
//	{/* jsxlint-disable-next-line jsx-boolean-value */}
//	// eslint-disable-next-line react/jsx-boolean-value
//	/* jsxlint-disable */ ... /* jsxlint-enable */
package nolint

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/gnolang/jsxlint/internal/jsx"
)

var directivePrefixes = []string{"jsxlint-", "eslint-"}

// pluginPrefix is stripped from ESLint rule names.
const pluginPrefix = "react/"

type directiveKind int

const (
	disableNextLine directiveKind = iota
	disableLine
	disable
	enable
)

var directiveNames = []struct {
	name string
	kind directiveKind
}{
	// longest first, "disable" prefixes the others
	{"disable-next-line", disableNextLine},
	{"disable-line", disableLine},
	{"disable", disable},
	{"enable", enable},
}

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	// scopes maps filename to a slice of nolint scopes.
	scopes map[string][]nolintScope
}

// nolintScope represents a line range where nolint applies. An empty rule
// set applies to all rules.
type nolintScope struct {
	rules     map[string]struct{}
	startLine int
	endLine   int
}

type directive struct {
	kind  directiveKind
	rules map[string]struct{}
}

// ParseComments parses the suppression comments of file and returns a Manager.
func ParseComments(file *jsx.File) *Manager {
	manager := Manager{
		scopes: make(map[string][]nolintScope),
	}
	lines := file.Lines()
	lastLine := lines.Position(len(file.Source)).Line

	// open disable blocks, closed by a matching enable or the end of file
	var open []nolintScope

	for _, comment := range file.Comments {
		d, err := parseDirective(comment.Text)
		if err != nil {
			// ignore non-directive comments
			continue
		}
		startLine := lines.Position(comment.Range.Start).Line
		endLine := lines.Position(comment.Range.End).Line

		switch d.kind {
		case disableNextLine:
			manager.add(file.Filename, nolintScope{rules: d.rules, startLine: endLine + 1, endLine: endLine + 1})
		case disableLine:
			manager.add(file.Filename, nolintScope{rules: d.rules, startLine: startLine, endLine: endLine})
		case disable:
			open = append(open, nolintScope{rules: d.rules, startLine: startLine})
		case enable:
			var remaining []nolintScope
			for _, ns := range open {
				if len(d.rules) == 0 || sameRules(ns.rules, d.rules) {
					ns.endLine = startLine
					manager.add(file.Filename, ns)
					continue
				}
				remaining = append(remaining, ns)
			}
			open = remaining
		}
	}

	for _, ns := range open {
		ns.endLine = lastLine
		manager.add(file.Filename, ns)
	}
	return &manager
}

func (m *Manager) add(filename string, ns nolintScope) {
	m.scopes[filename] = append(m.scopes[filename], ns)
}

// parseDirective parses the text of a single comment. A description may
// follow the rule list after "--".
func parseDirective(text string) (directive, error) {
	var d directive
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "*"))

	var rest string
	found := false
	for _, prefix := range directivePrefixes {
		if strings.HasPrefix(text, prefix) {
			rest = text[len(prefix):]
			found = true
			break
		}
	}
	if !found {
		return d, fmt.Errorf("not a directive comment")
	}

	matched := false
	for _, dn := range directiveNames {
		if !strings.HasPrefix(rest, dn.name) {
			continue
		}
		after := rest[len(dn.name):]
		if after != "" && after[0] != ' ' && after[0] != '\t' && after[0] != '\n' {
			continue
		}
		d.kind = dn.kind
		rest = after
		matched = true
		break
	}
	if !matched {
		return d, fmt.Errorf("unknown directive %q", text)
	}

	if i := strings.Index(rest, "--"); i >= 0 {
		rest = rest[:i]
	}
	d.rules = parseIgnoreRuleNames(strings.TrimSpace(rest))
	return d, nil
}

// parseIgnoreRuleNames parses the comma separated rule list of a directive.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	rules := strings.Split(text, ",")
	for _, rule := range rules {
		rule = strings.TrimPrefix(strings.TrimSpace(rule), pluginPrefix)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

func sameRules(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for rule := range a {
		if _, ok := b[rule]; !ok {
			return false
		}
	}
	return true
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if pos.Line < ns.startLine || pos.Line > ns.endLine {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
