package jsxbool

import (
	"strings"
	"testing"

	"github.com/gnolang/jsxlint/internal/jsx"
	"github.com/stretchr/testify/require"
)

// attributeFromText builds the node a parser would produce for a single
// attribute written as name, name={expr} or name="text".
func attributeFromText(t *testing.T, src string) *jsx.Attribute {
	t.Helper()

	nameEnd := strings.IndexByte(src, '=')
	if nameEnd < 0 {
		return &jsx.Attribute{
			Name:      src,
			NameRange: jsx.Range{Start: 0, End: len(src)},
			Range:     jsx.Range{Start: 0, End: len(src)},
		}
	}

	valueText := src[nameEnd+1:]
	value := &jsx.Value{Range: jsx.Range{Start: nameEnd + 1, End: len(src)}}
	switch {
	case strings.HasPrefix(valueText, "{"):
		require.True(t, strings.HasSuffix(valueText, "}"), "unterminated expression container")
		value.Kind = jsx.ValueExpressionContainer
		switch strings.TrimSpace(valueText[1 : len(valueText)-1]) {
		case "true":
			b := true
			value.Boolean = &b
		case "false":
			b := false
			value.Boolean = &b
		}
	case strings.HasPrefix(valueText, "<"):
		value.Kind = jsx.ValueElement
	default:
		value.Kind = jsx.ValueLiteral
	}

	return &jsx.Attribute{
		Name:      src[:nameEnd],
		NameRange: jsx.Range{Start: 0, End: nameEnd},
		Range:     jsx.Range{Start: 0, End: len(src)},
		Value:     value,
	}
}

// attributeIn locates text inside src and returns its node with ranges
// relative to src.
func attributeIn(t *testing.T, src, text string) jsx.Attribute {
	t.Helper()

	at := strings.Index(src, text)
	require.GreaterOrEqual(t, at, 0, "%q not found in source", text)

	attr := *attributeFromText(t, text)
	shift := func(r jsx.Range) jsx.Range { return jsx.Range{Start: r.Start + at, End: r.End + at} }
	attr.NameRange = shift(attr.NameRange)
	attr.Range = shift(attr.Range)
	if attr.Value != nil {
		value := *attr.Value
		value.Range = shift(value.Range)
		attr.Value = &value
	}
	return attr
}
