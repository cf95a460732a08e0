package jsxbool

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidOptions is returned when the rule options do not match the
// accepted schema.
var ErrInvalidOptions = errors.New("invalid jsx-boolean-value options")

// Mode is the global notation policy.
type Mode string

const (
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// Options is the raw option tuple: [mode, {never|always, assumeUndefinedIsFalse}].
type Options struct {
	Mode                   Mode
	Never                  []string
	Always                 []string
	AssumeUndefinedIsFalse bool
}

type optionsObject struct {
	Never                  []string `yaml:"never"`
	Always                 []string `yaml:"always"`
	AssumeUndefinedIsFalse *bool    `yaml:"assumeUndefinedIsFalse"`
}

var allowedObjectKeys = map[string]bool{
	"never":                  true,
	"always":                 true,
	"assumeUndefinedIsFalse": true,
}

// ParseOptions decodes and validates the options node of the rule's
// configuration entry. A zero node yields the defaults.
func ParseOptions(n *yaml.Node) (Options, error) {
	opts := Options{Mode: ModeNever}
	if n == nil || n.Kind == 0 {
		return opts, nil
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}

	// a bare scalar is accepted as shorthand for [mode]
	if n.Kind == yaml.ScalarNode {
		mode, err := parseMode(n)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
		return opts, nil
	}

	if n.Kind != yaml.SequenceNode {
		return opts, fmt.Errorf("%w: expected a list, line %d", ErrInvalidOptions, n.Line)
	}
	if len(n.Content) < 1 || len(n.Content) > 2 {
		return opts, fmt.Errorf("%w: expected 1 or 2 items, got %d", ErrInvalidOptions, len(n.Content))
	}

	mode, err := parseMode(n.Content[0])
	if err != nil {
		return opts, err
	}
	opts.Mode = mode

	if len(n.Content) == 1 {
		return opts, nil
	}

	obj := n.Content[1]
	if obj.Kind != yaml.MappingNode {
		return opts, fmt.Errorf("%w: second item must be a mapping, line %d", ErrInvalidOptions, obj.Line)
	}
	for i := 0; i < len(obj.Content); i += 2 {
		key := obj.Content[i].Value
		if !allowedObjectKeys[key] {
			return opts, fmt.Errorf("%w: unknown key %q, line %d", ErrInvalidOptions, key, obj.Content[i].Line)
		}
	}

	var raw optionsObject
	if err := obj.Decode(&raw); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	switch {
	case raw.Never != nil && raw.Always != nil:
		return opts, fmt.Errorf("%w: only one of never and always may be set", ErrInvalidOptions)
	case mode == ModeAlways && raw.Always != nil:
		return opts, fmt.Errorf("%w: exceptions for mode always must be listed under never", ErrInvalidOptions)
	case mode == ModeNever && raw.Never != nil:
		return opts, fmt.Errorf("%w: exceptions for mode never must be listed under always", ErrInvalidOptions)
	}

	if err := validateNames("never", raw.Never); err != nil {
		return opts, err
	}
	if err := validateNames("always", raw.Always); err != nil {
		return opts, err
	}

	opts.Never = raw.Never
	opts.Always = raw.Always
	if raw.AssumeUndefinedIsFalse != nil {
		opts.AssumeUndefinedIsFalse = *raw.AssumeUndefinedIsFalse
	}
	return opts, nil
}

func parseMode(n *yaml.Node) (Mode, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: mode must be \"always\" or \"never\", line %d", ErrInvalidOptions, n.Line)
	}
	switch Mode(n.Value) {
	case ModeAlways, ModeNever:
		return Mode(n.Value), nil
	}
	return "", fmt.Errorf("%w: mode must be \"always\" or \"never\", got %q", ErrInvalidOptions, n.Value)
}

func validateNames(key string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: %s contains an empty name", ErrInvalidOptions, key)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s lists %q more than once", ErrInvalidOptions, key, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// MarshalYAML renders the options in the tuple form accepted by ParseOptions.
func (o Options) MarshalYAML() (interface{}, error) {
	mode := o.Mode
	if mode == "" {
		mode = ModeNever
	}
	obj := map[string]interface{}{}
	if mode == ModeAlways && len(o.Never) > 0 {
		obj["never"] = o.Never
	}
	if mode == ModeNever && len(o.Always) > 0 {
		obj["always"] = o.Always
	}
	if o.AssumeUndefinedIsFalse {
		obj["assumeUndefinedIsFalse"] = true
	}
	if len(obj) == 0 {
		return []interface{}{string(mode)}, nil
	}
	return []interface{}{string(mode), obj}, nil
}
