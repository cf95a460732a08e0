package trie

import (
	"path/filepath"
	"sort"
	"strings"
)

// The trie keeps its nodes in an arena: one slice of nodes addressed by
// index instead of one allocation per node.

// NodeIndex represents the index of a trie node.
type NodeIndex int

// Arena is a memory pool that stores all trie nodes.
type Arena struct {
	// nodes is a slice that stores all trie nodes.
	nodes []arenaNode
}

// arenaNode is the internal representation of a trie node stored in the arena.
type arenaNode struct {
	// children stores child nodes. key is the path segment, value is the index of the child node.
	children map[string]NodeIndex
	// isEnd indicates whether this node is the end of a path.
	isEnd bool
}

const rootIndex NodeIndex = 0

func NewArena() *Arena {
	a := &Arena{}
	a.newNode()
	return a
}

func (a *Arena) newNode() NodeIndex {
	a.nodes = append(a.nodes, arenaNode{children: make(map[string]NodeIndex)})
	return NodeIndex(len(a.nodes) - 1)
}

// Insert adds a sequence of segments.
func (a *Arena) Insert(sequence []string) {
	current := rootIndex
	for _, seg := range sequence {
		next, ok := a.nodes[current].children[seg]
		if !ok {
			next = a.newNode()
			a.nodes[current].children[seg] = next
		}
		current = next
	}
	a.nodes[current].isEnd = true
}

// MatchPrefix reports whether an inserted sequence is a prefix of sequence,
// the sequence itself included.
func (a *Arena) MatchPrefix(sequence []string) bool {
	current := rootIndex
	if a.nodes[current].isEnd {
		return true
	}
	for _, seg := range sequence {
		next, ok := a.nodes[current].children[seg]
		if !ok {
			return false
		}
		if a.nodes[next].isEnd {
			return true
		}
		current = next
	}
	return false
}

// Sequences returns every inserted sequence in lexical order.
func (a *Arena) Sequences() [][]string {
	var out [][]string
	a.collect(rootIndex, nil, &out)
	return out
}

func (a *Arena) collect(idx NodeIndex, prefix []string, out *[][]string) {
	node := a.nodes[idx]
	if node.isEnd {
		*out = append(*out, append([]string(nil), prefix...))
	}

	keys := make([]string, 0, len(node.children))
	for k := range node.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		a.collect(node.children[k], append(prefix, k), out)
	}
}

// Trie matches file paths against a set of directory prefixes, segment by
// segment, so "src/gen" covers "src/gen/a.jsx" but not "src/generated".
type Trie struct {
	arena *Arena
}

func New() *Trie {
	return &Trie{arena: NewArena()}
}

// Insert adds a path prefix.
func (t *Trie) Insert(path string) {
	t.arena.Insert(segments(path))
}

// Covers reports whether path equals or lies below an inserted prefix.
func (t *Trie) Covers(path string) bool {
	return t.arena.MatchPrefix(segments(path))
}

// Paths returns the inserted prefixes in lexical order.
func (t *Trie) Paths() []string {
	seqs := t.arena.Sequences()
	paths := make([]string, len(seqs))
	for i, seq := range seqs {
		if len(seq) > 0 && seq[0] == "/" {
			paths[i] = "/" + strings.Join(seq[1:], "/")
			continue
		}
		paths[i] = strings.Join(seq, "/")
	}
	return paths
}

func segments(path string) []string {
	path = filepath.ToSlash(filepath.Clean(path))
	if path == "." {
		return nil
	}
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" && seg != "." {
			segs = append(segs, seg)
		}
	}
	if strings.HasPrefix(path, "/") {
		segs = append([]string{"/"}, segs...)
	}
	return segs
}
