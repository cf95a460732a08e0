package formatter

import (
	"fmt"
	"os"
	"strings"
)

// SourceCode stores the content of a source file and its lines.
type SourceCode struct {
	Source []byte
	Lines  []string
}

func NewSourceCode(src []byte) *SourceCode {
	return &SourceCode{Source: src, Lines: splitLines(src)}
}

// ReadSourceCode reads the content of a file and returns it as a SourceCode.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading source file: %w", err)
	}
	return NewSourceCode(content), nil
}

func splitLines(src []byte) []string {
	lines := strings.Split(string(src), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
