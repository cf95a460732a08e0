package jsx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

var (
	ErrOffsetOutOfRange     = errors.New("offset out of range")
	ErrNotAttributeDocument = errors.New("not an ESTree document")
	ErrMalformedNode        = errors.New("malformed JSX node")
)

const (
	typeAttribute           = "JSXAttribute"
	typeIdentifier          = "JSXIdentifier"
	typeNamespacedName      = "JSXNamespacedName"
	typeExpressionContainer = "JSXExpressionContainer"
	typeElement             = "JSXElement"
	typeFragment            = "JSXFragment"
	typeLiteral             = "Literal"
	typeStringLiteral       = "StringLiteral"
	typeBooleanLiteral      = "BooleanLiteral"

	// espree/acorn and babel comment node types
	typeBlockComment = "Block"
	typeLineComment  = "Line"
	typeCommentBlock = "CommentBlock"
	typeCommentLine  = "CommentLine"
)

type node = map[string]any

// Document is the part of an ESTree document the rules consume.
type Document struct {
	Attributes []Attribute
	Comments   []Comment
}

// DecodeDocument reads an ESTree JSON document and returns its JSXAttribute
// nodes in document order, with offsets converted to byte offsets of src,
// along with the comments listed in the document's "comments" arrays.
func DecodeDocument(r io.Reader, src []byte, enc OffsetEncoding) (*Document, error) {
	var root any
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding ESTree document: %w", err)
	}
	obj, ok := root.(node)
	if !ok {
		return nil, ErrNotAttributeDocument
	}
	if _, ok := obj["type"].(string); !ok {
		return nil, ErrNotAttributeDocument
	}

	d := &decoder{
		offsets: NewOffsetMap(src, enc),
		seen:    make(map[Range]bool),
	}
	if err := d.walk(obj); err != nil {
		return nil, err
	}

	sort.SliceStable(d.attrs, func(i, j int) bool {
		return d.attrs[i].Range.Start < d.attrs[j].Range.Start
	})
	sort.SliceStable(d.comments, func(i, j int) bool {
		return d.comments[i].Range.Start < d.comments[j].Range.Start
	})
	return &Document{Attributes: d.attrs, Comments: d.comments}, nil
}

type decoder struct {
	offsets  *OffsetMap
	attrs    []Attribute
	comments []Comment
	// babel lists comments on both File and Program
	seen map[Range]bool
}

func (d *decoder) walk(v any) error {
	switch n := v.(type) {
	case node:
		if n["type"] == typeAttribute {
			attr, err := d.attribute(n)
			if err != nil {
				return err
			}
			d.attrs = append(d.attrs, attr)
		}
		for key, child := range n {
			if key == "comments" {
				d.collectComments(child)
				continue
			}
			// parent links and tokens never contain attributes
			if key == "parent" || key == "tokens" {
				continue
			}
			if err := d.walk(child); err != nil {
				return err
			}
		}
	case []any:
		for _, child := range n {
			if err := d.walk(child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) attribute(n node) (Attribute, error) {
	var attr Attribute

	rng, err := d.rangeOf(n)
	if err != nil {
		return attr, err
	}
	attr.Range = rng

	if nameNode, ok := n["name"].(node); ok {
		attr.Name = attributeName(nameNode)
		if attr.NameRange, err = d.rangeOf(nameNode); err != nil {
			return attr, err
		}
	}

	valueNode, ok := n["value"].(node)
	if !ok {
		return attr, nil
	}

	value := &Value{}
	if value.Range, err = d.rangeOf(valueNode); err != nil {
		return attr, err
	}
	switch valueNode["type"] {
	case typeExpressionContainer:
		value.Kind = ValueExpressionContainer
		if expr, ok := valueNode["expression"].(node); ok {
			value.Boolean = booleanLiteral(expr)
		}
	case typeElement, typeFragment:
		value.Kind = ValueElement
	default:
		value.Kind = ValueLiteral
	}
	attr.Value = value
	return attr, nil
}

// collectComments records the comment nodes of a "comments" array.
// Comments without a usable range are dropped.
func (d *decoder) collectComments(v any) {
	list, ok := v.([]any)
	if !ok {
		return
	}
	for _, item := range list {
		n, ok := item.(node)
		if !ok {
			continue
		}
		var block bool
		switch n["type"] {
		case typeBlockComment, typeCommentBlock:
			block = true
		case typeLineComment, typeCommentLine:
		default:
			continue
		}
		rng, err := d.rangeOf(n)
		if err != nil || d.seen[rng] {
			continue
		}
		d.seen[rng] = true
		text, _ := n["value"].(string)
		d.comments = append(d.comments, Comment{Text: text, Range: rng, Block: block})
	}
}

// attributeName renders JSXIdentifier as its name and JSXNamespacedName
// as "namespace:name".
func attributeName(n node) string {
	switch n["type"] {
	case typeIdentifier:
		name, _ := n["name"].(string)
		return name
	case typeNamespacedName:
		ns, _ := n["namespace"].(node)
		local, _ := n["name"].(node)
		if ns == nil || local == nil {
			return ""
		}
		return attributeName(ns) + ":" + attributeName(local)
	}
	return ""
}

func booleanLiteral(expr node) *bool {
	switch expr["type"] {
	case typeLiteral, typeBooleanLiteral:
		if b, ok := expr["value"].(bool); ok {
			return &b
		}
	}
	return nil
}

func (d *decoder) rangeOf(n node) (Range, error) {
	start, end, ok := rawRange(n)
	if !ok {
		return Range{}, fmt.Errorf("%w: %v node has no range", ErrMalformedNode, n["type"])
	}
	return d.offsets.ToRange(start, end)
}

// rawRange prefers the espree style "range": [start, end] and falls back to
// the babel/acorn "start" and "end" fields.
func rawRange(n node) (int, int, bool) {
	if r, ok := n["range"].([]any); ok && len(r) == 2 {
		start, ok1 := r[0].(float64)
		end, ok2 := r[1].(float64)
		if ok1 && ok2 {
			return int(start), int(end), true
		}
	}
	start, ok1 := n["start"].(float64)
	end, ok2 := n["end"].(float64)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return int(start), int(end), true
}
