package jsx

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// DocumentSuffix marks an ESTree JSON document. The document for
// src/Button.jsx is src/Button.jsx.ast.json.
const DocumentSuffix = ".ast.json"

// IsDocument reports whether path names an ESTree JSON document.
func IsDocument(path string) bool {
	return strings.HasSuffix(path, DocumentSuffix) && len(path) > len(DocumentSuffix)
}

// SourcePath returns the source file described by a document path.
func SourcePath(documentPath string) string {
	return strings.TrimSuffix(documentPath, DocumentSuffix)
}

// DocumentPath returns the document path for a source file.
func DocumentPath(sourcePath string) string {
	return sourcePath + DocumentSuffix
}

// Load reads a document and the source it describes.
func Load(documentPath string, enc OffsetEncoding) (*File, error) {
	sourcePath := SourcePath(documentPath)
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("error reading source file: %w", err)
	}
	doc, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	return Parse(sourcePath, src, doc, enc)
}

// Parse builds a File from in-memory source and document bytes.
func Parse(filename string, src, doc []byte, enc OffsetEncoding) (*File, error) {
	d, err := DecodeDocument(bytes.NewReader(doc), src, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	file := NewFile(filename, src, d.Attributes)
	file.Comments = d.Comments
	return file, nil
}
