package jsx

import (
	"fmt"
	"go/token"
	"sort"
	"strings"
	"unicode/utf8"
)

// OffsetEncoding names the unit a parser uses for node offsets.
type OffsetEncoding int

const (
	// OffsetUTF16 counts UTF-16 code units, the index space of JS strings.
	OffsetUTF16 OffsetEncoding = iota
	// OffsetByte counts bytes of the UTF-8 source.
	OffsetByte
)

func (e OffsetEncoding) String() string {
	if e == OffsetByte {
		return "byte"
	}
	return "utf16"
}

// ParseOffsetEncoding accepts "utf16" (or "") and "byte".
func ParseOffsetEncoding(s string) (OffsetEncoding, error) {
	switch strings.ToLower(s) {
	case "", "utf16", "utf-16":
		return OffsetUTF16, nil
	case "byte", "bytes", "utf8", "utf-8":
		return OffsetByte, nil
	}
	return OffsetUTF16, fmt.Errorf("unknown offset encoding %q", s)
}

// OffsetMap converts parser offsets into byte offsets of a source.
type OffsetMap struct {
	encoding OffsetEncoding
	size     int
	// units[i] is the UTF-16 offset at which the i-th rune starts,
	// bytes[i] the byte offset of the same rune.
	units []int
	bytes []int
}

// NewOffsetMap indexes src. ASCII-only sources map 1:1 regardless of the
// encoding and skip the rune table.
func NewOffsetMap(src []byte, enc OffsetEncoding) *OffsetMap {
	m := &OffsetMap{encoding: enc, size: len(src)}
	if enc == OffsetByte || isASCII(src) {
		m.encoding = OffsetByte
		return m
	}

	unit := 0
	for i := 0; i < len(src); {
		r, w := utf8.DecodeRune(src[i:])
		m.units = append(m.units, unit)
		m.bytes = append(m.bytes, i)
		if r >= 0x10000 {
			unit += 2
		} else {
			unit++
		}
		i += w
	}
	m.units = append(m.units, unit)
	m.bytes = append(m.bytes, len(src))
	return m
}

// ToByte converts a parser offset to a byte offset.
func (m *OffsetMap) ToByte(off int) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", ErrOffsetOutOfRange, off)
	}
	if m.encoding == OffsetByte {
		if off > m.size {
			return 0, fmt.Errorf("%w: offset %d beyond source size %d", ErrOffsetOutOfRange, off, m.size)
		}
		return off, nil
	}

	i := sort.SearchInts(m.units, off)
	if i == len(m.units) {
		return 0, fmt.Errorf("%w: offset %d beyond source size", ErrOffsetOutOfRange, off)
	}
	if m.units[i] != off {
		// offset points into the middle of a surrogate pair
		return 0, fmt.Errorf("%w: offset %d splits a surrogate pair", ErrOffsetOutOfRange, off)
	}
	return m.bytes[i], nil
}

// ToRange converts a parser [start, end) pair.
func (m *OffsetMap) ToRange(start, end int) (Range, error) {
	s, err := m.ToByte(start)
	if err != nil {
		return Range{}, err
	}
	e, err := m.ToByte(end)
	if err != nil {
		return Range{}, err
	}
	if e < s {
		return Range{}, fmt.Errorf("%w: range [%d, %d) is inverted", ErrOffsetOutOfRange, start, end)
	}
	return Range{Start: s, End: e}, nil
}

func isASCII(src []byte) bool {
	for _, b := range src {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// LineIndex maps byte offsets to 1-based line and column positions.
type LineIndex struct {
	filename string
	starts   []int
}

func NewLineIndex(filename string, src []byte) *LineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{filename: filename, starts: starts}
}

// Position returns the position of a byte offset. Columns count bytes,
// matching go/token.
func (l *LineIndex) Position(offset int) token.Position {
	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return token.Position{
		Filename: l.filename,
		Offset:   offset,
		Line:     line + 1,
		Column:   offset - l.starts[line] + 1,
	}
}
