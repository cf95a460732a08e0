package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSkipDirs are directory names never descended into.
var DefaultSkipDirs = []string{".git", "node_modules"}

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	rootDir  string
	suffixes []string
	skipDirs map[string]bool
}

// New returns a scanner for files under rootDir ending in one of suffixes.
// Suffixes may span several dots, as in ".jsx.ast.json".
func New(rootDir string, suffixes ...string) *Scanner {
	s := &Scanner{
		rootDir:  rootDir,
		suffixes: suffixes,
		skipDirs: make(map[string]bool),
	}
	for _, dir := range DefaultSkipDirs {
		s.skipDirs[dir] = true
	}
	return s
}

// SkipDir adds a directory name that is not descended into.
func (s *Scanner) SkipDir(name string) *Scanner {
	s.skipDirs[name] = true
	return s
}

// Scan walks the root directory and returns the matching files sorted by path.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != s.rootDir && s.skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isTargetFile(path) {
			files = append(files, FileInfo{
				Path: path,
				Size: info.Size(),
			})
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.suffixes) == 0 {
		return true
	}

	for _, suffix := range s.suffixes {
		if strings.HasSuffix(path, suffix) && len(filepath.Base(path)) > len(suffix) {
			return true
		}
	}
	return false
}
