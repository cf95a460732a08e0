package internal

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gnolang/jsxlint/internal/jsx"
	"github.com/gnolang/jsxlint/internal/nolint"
	"github.com/gnolang/jsxlint/internal/trie"
	tt "github.com/gnolang/jsxlint/internal/types"
	"go.uber.org/zap"
)

// ErrUnknownRule is returned when the configuration names a rule that is
// not registered.
var ErrUnknownRule = errors.New("unknown rule")

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	ignoredGlobs []string
	ignoredDirs  *trie.Trie
	rules        map[string]LintRule
	encoding     jsx.OffsetEncoding
	cache        *Cache

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
	report     ReportFunc
	logger     *zap.Logger
	done       chan struct{}
	mu         sync.Mutex
}

// NewEngine creates a new lint engine configured with the given rule entries.
func NewEngine(rules map[string]tt.ConfigRule, encoding jsx.OffsetEncoding) (*Engine, error) {
	engine := &Engine{encoding: encoding}
	if err := engine.applyRules(rules); err != nil {
		return nil, err
	}
	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// allRuleConstructors maps rule names to their constructors.
var allRuleConstructors = ruleMap{
	"jsx-boolean-value": NewJSXBooleanValueRule,
}

// RuleNames returns the registered rule names in sorted order.
func RuleNames() []string {
	names := make([]string, 0, len(allRuleConstructors))
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) error {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	for key, rule := range rules {
		rule := rule
		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				return fmt.Errorf("%w: %s", ErrUnknownRule, key)
			}
			r = newRuleCstr()
			e.rules[key] = r
		}
		if err := r.Configure(&rule.Options); err != nil {
			return fmt.Errorf("rule %s: %w", key, err)
		}
		if rule.Severity != nil {
			r.SetSeverity(*rule.Severity)
		}
	}
	return nil
}

func (e *Engine) registerDefaultRules() {
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// SetCache enables result caching keyed on document and source contents.
func (e *Engine) SetCache(c *Cache) {
	e.cache = c
}

// ClearCache drops every cached result. It is a no-op without a cache.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.InvalidateAll()
	}
}

// Run applies all lint rules to the source described by the given ESTree
// document and returns a slice of Issues.
func (e *Engine) Run(documentPath string) ([]tt.Issue, error) {
	if e.isIgnoredPath(documentPath) || e.isIgnoredPath(jsx.SourcePath(documentPath)) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(documentPath); ok {
			return e.withoutIgnoredRules(issues), nil
		}
	}

	file, err := jsx.Load(documentPath, e.encoding)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", documentPath, err)
	}

	issues, err := e.check(file)
	if err != nil {
		return nil, err
	}

	// cached results hold every enabled rule; --ignore is applied on the way out
	if e.cache != nil {
		if err := e.cache.Set(documentPath, issues); err != nil {
			return e.withoutIgnoredRules(issues), fmt.Errorf("error caching results: %w", err)
		}
	}
	return e.withoutIgnoredRules(issues), nil
}

// RunSource applies all lint rules to in-memory source and document bytes.
func (e *Engine) RunSource(filename string, source, document []byte) ([]tt.Issue, error) {
	file, err := jsx.Parse(filename, source, document, e.encoding)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}
	issues, err := e.check(file)
	if err != nil {
		return nil, err
	}
	return e.withoutIgnoredRules(issues), nil
}

func (e *Engine) check(file *jsx.File) ([]tt.Issue, error) {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		allIssues []tt.Issue
		errs      []error
	)

	for _, rule := range e.rules {
		if rule.Severity() == tt.SeverityOff {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			issues, err := r.Check(file)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("rule %s: %w", r.Name(), err))
				return
			}
			allIssues = append(allIssues, issues...)
		}(rule)
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	allIssues = filterNolintIssues(nolint.ParseComments(file), allIssues)

	sort.SliceStable(allIssues, func(i, j int) bool {
		if allIssues[i].Start.Offset != allIssues[j].Start.Offset {
			return allIssues[i].Start.Offset < allIssues[j].Start.Offset
		}
		return allIssues[i].Rule < allIssues[j].Rule
	})
	return allIssues, nil
}

// filterNolintIssues drops issues suppressed by directive comments.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.IsNolint(issue.Start, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func (e *Engine) withoutIgnoredRules(issues []tt.Issue) []tt.Issue {
	if len(e.ignoredRules) == 0 {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !e.ignoredRules[issue.Rule] {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath skips documents matching pattern. A pattern with glob
// metacharacters is matched against the whole path and its base name;
// any other pattern is a path prefix compared segment by segment.
func (e *Engine) IgnorePath(pattern string) {
	if pattern == "" {
		return
	}
	if strings.ContainsAny(pattern, "*?[") {
		e.ignoredGlobs = append(e.ignoredGlobs, filepath.Clean(pattern))
		return
	}
	if e.ignoredDirs == nil {
		e.ignoredDirs = trie.New()
	}
	e.ignoredDirs.Insert(pattern)
}

func (e *Engine) isIgnoredPath(path string) bool {
	path = filepath.Clean(path)
	if e.ignoredDirs != nil && e.ignoredDirs.Covers(path) {
		return true
	}
	for _, pattern := range e.ignoredGlobs {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}
