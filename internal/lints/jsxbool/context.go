package jsxbool

import "strings"

// DecisionContext is the resolved, read-only configuration used to judge
// every attribute of one file.
type DecisionContext struct {
	mode                   Mode
	exceptions             []string
	excepted               map[string]struct{}
	assumeUndefinedIsFalse bool
	exceptionsMessage      string
}

// Resolve builds the DecisionContext for opts. Exceptions are read only
// from the key opposite to the mode; the same-side key is ignored.
func Resolve(opts Options) *DecisionContext {
	mode := opts.Mode
	if mode != ModeAlways {
		mode = ModeNever
	}

	source := opts.Always
	if mode == ModeAlways {
		source = opts.Never
	}

	dc := &DecisionContext{
		mode:                   mode,
		excepted:               make(map[string]struct{}, len(source)),
		assumeUndefinedIsFalse: opts.AssumeUndefinedIsFalse,
	}
	for _, name := range source {
		if _, ok := dc.excepted[name]; ok {
			continue
		}
		dc.excepted[name] = struct{}{}
		dc.exceptions = append(dc.exceptions, name)
	}
	dc.exceptionsMessage = exceptionsMessage(dc.exceptions)
	return dc
}

func (dc *DecisionContext) Mode() Mode { return dc.mode }

// Exceptions returns the excepted names in configuration order.
func (dc *DecisionContext) Exceptions() []string {
	out := make([]string, len(dc.exceptions))
	copy(out, dc.exceptions)
	return out
}

func (dc *DecisionContext) AssumeUndefinedIsFalse() bool { return dc.assumeUndefinedIsFalse }

// ExceptionsMessage is the message suffix listing the exceptions, empty
// when there are none.
func (dc *DecisionContext) ExceptionsMessage() string { return dc.exceptionsMessage }

func (dc *DecisionContext) isException(name string) bool {
	_, ok := dc.excepted[name]
	return ok
}

// EffectiveIsAlways reports whether name must carry an explicit value.
func (dc *DecisionContext) EffectiveIsAlways(name string) bool {
	return (dc.mode == ModeAlways) != dc.isException(name)
}

// EffectiveIsNever reports whether name must use the shorthand notation.
func (dc *DecisionContext) EffectiveIsNever(name string) bool {
	return (dc.mode == ModeNever) != dc.isException(name)
}

func exceptionsMessage(names []string) string {
	if len(names) == 0 {
		return ""
	}
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "`" + name + "`"
	}
	return " for the following props: " + strings.Join(quoted, ", ")
}
