package types

import (
	"fmt"
	"go/token"
	"strings"

	"gopkg.in/yaml.v3"
)

// Issue represents a lint issue found in a JSX source file.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	MessageID  string
	Suggestion string
	Note       string
	Start      token.Position
	End        token.Position
	Severity   Severity
	Fix        *TextEdit
}

// TextEdit replaces the source bytes in [Start, End) with NewText.
// Start == End is an insertion. OldText, when set, must match the
// replaced bytes for the edit to be applied.
type TextEdit struct {
	Start   int
	End     int
	NewText string
	OldText string
}

// IsInsertion reports whether the edit only inserts text.
func (e TextEdit) IsInsertion() bool {
	return e.Start == e.End
}

// Apply returns src with the edit applied. The caller is responsible
// for checking the range against src.
func (e TextEdit) Apply(src []byte) []byte {
	out := make([]byte, 0, len(src)-(e.End-e.Start)+len(e.NewText))
	out = append(out, src[:e.Start]...)
	out = append(out, e.NewText...)
	return append(out, src[e.End:]...)
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity parses a case-insensitive severity name.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "off":
		return SeverityOff, nil
	}
	return SeverityError, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalYAML() (interface{}, error) {
	return strings.ToLower(s.String()), nil
}

func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSeverity(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ConfigRule is the per-rule entry of the configuration file.
// Options is kept as a raw node; each rule decodes and validates
// its own option shape. A nil Severity keeps the rule's default.
type ConfigRule struct {
	Severity *Severity `yaml:"severity,omitempty"`
	Options  yaml.Node `yaml:"options,omitempty"`
}
