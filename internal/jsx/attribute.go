// Package jsx models the JSX attribute nodes handed to the lint rules by an
// external ESTree parser (babel, espree or acorn-jsx) and converts the
// parser's offsets into byte positions of the original source.
package jsx

// Range is a half-open [Start, End) span of byte offsets into the source.
type Range struct {
	Start int
	End   int
}

// ValueKind classifies the syntax used for an attribute value.
type ValueKind int

const (
	// ValueLiteral is a quoted string value: attr="x".
	ValueLiteral ValueKind = iota
	// ValueExpressionContainer is an embedded expression: attr={x}.
	ValueExpressionContainer
	// ValueElement is a JSX element or fragment used as a value.
	ValueElement
)

func (k ValueKind) String() string {
	switch k {
	case ValueLiteral:
		return "Literal"
	case ValueExpressionContainer:
		return "JSXExpressionContainer"
	case ValueElement:
		return "JSXElement"
	default:
		return "Unknown"
	}
}

// Value is the right-hand side of an attribute.
type Value struct {
	Kind  ValueKind
	Range Range

	// Boolean is set only for expression containers that directly wrap a
	// boolean literal: {true} or {false}.
	Boolean *bool
}

// Attribute is a single JSXAttribute node. A nil Value is the shorthand
// notation, equivalent to {true}.
type Attribute struct {
	Name      string
	NameRange Range
	Range     Range
	Value     *Value
}

// IsShorthand reports whether the attribute is written without a value.
func (a *Attribute) IsShorthand() bool {
	return a.Value == nil
}

// BooleanLiteral returns the literal wrapped by an expression container
// value. ok is false for shorthand, string, element and dynamic values.
func (a *Attribute) BooleanLiteral() (value bool, ok bool) {
	if a.Value == nil || a.Value.Kind != ValueExpressionContainer || a.Value.Boolean == nil {
		return false, false
	}
	return *a.Value.Boolean, true
}

// Comment is a source comment listed by the parser. Text excludes the
// comment delimiters.
type Comment struct {
	Text  string
	Range Range
	Block bool
}

// File is one analysed source file together with its attribute nodes in
// document order.
type File struct {
	Filename   string
	Source     []byte
	Attributes []Attribute
	Comments   []Comment

	lines *LineIndex
}

// NewFile builds a File and indexes the source lines for position lookups.
func NewFile(filename string, source []byte, attrs []Attribute) *File {
	return &File{
		Filename:   filename,
		Source:     source,
		Attributes: attrs,
		lines:      NewLineIndex(filename, source),
	}
}

// Lines returns the line index of the source.
func (f *File) Lines() *LineIndex {
	if f.lines == nil {
		f.lines = NewLineIndex(f.Filename, f.Source)
	}
	return f.lines
}
