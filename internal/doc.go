// Package internal provides the rule engine of jsxlint.
//
// The engine reads ESTree JSON documents produced by an external JSX parser
// (babel, espree or acorn-jsx), pairs each document with the source file it
// describes, and applies the registered lint rules to the attributes found
// in it.
//
// Key components:
//
// Engine: coordinates the linting process. It owns the rule registry,
// applies the per-rule severity and options from the configuration file,
// and skips ignored rules and paths.
//
// LintRule: the contract every rule implements. Rules receive a decoded
// *jsx.File and return issues, each carrying at most one text edit.
//
// Cache: persists results between runs, keyed on the contents of the
// document, its source and the configuration file.
//
// Watch mode re-lints documents as the parser rewrites them.
//
// Usage:
//
//	engine, err := internal.NewEngine(cfg.Rules, jsx.OffsetUTF16)
//	if err != nil {
//	    // handle error
//	}
//	issues, err := engine.Run("src/Button.jsx.ast.json")
package internal
