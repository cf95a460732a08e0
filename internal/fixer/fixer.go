package fixer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	tt "github.com/gnolang/jsxlint/internal/types"
)

var (
	// ErrEditMismatch means the source no longer holds the text an edit
	// expects to replace, usually because the document is stale.
	ErrEditMismatch   = errors.New("edit does not match source")
	ErrEditOutOfRange = errors.New("edit out of range")
)

type Fixer struct {
	DryRun      bool
	MinSeverity tt.Severity // issues less severe than this are left alone
	Out         io.Writer
}

func New(dryRun bool, threshold tt.Severity) *Fixer {
	return &Fixer{
		DryRun:      dryRun,
		MinSeverity: threshold,
		Out:         os.Stdout,
	}
}

// Fix applies the edits carried by issues to filename. Issues without an
// edit, below the severity threshold or overlapping an edit already
// applied are skipped.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fixable []tt.Issue
	for _, issue := range issues {
		if issue.Fix == nil || issue.Severity > f.MinSeverity {
			continue
		}
		fixable = append(fixable, issue)
	}
	if len(fixable) == 0 {
		return nil
	}

	sort.SliceStable(fixable, func(i, j int) bool {
		return fixable[i].End.Offset > fixable[j].End.Offset
	})

	if f.DryRun {
		for _, issue := range fixable {
			fmt.Fprintf(f.out(), "Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(f.out(), "Suggestion:\n%s\n", issue.Suggestion)
			}
		}
		return nil
	}

	edits := make([]tt.TextEdit, len(fixable))
	for i, issue := range fixable {
		edits[i] = *issue.Fix
	}

	fixed, skipped, err := ApplyEdits(content, edits)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	if err := os.WriteFile(filename, fixed, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(f.out(), "Fixed %d issues in %s\n", len(edits)-len(skipped), filename)
	for _, edit := range skipped {
		fmt.Fprintf(f.out(), "Skipped overlapping edit at offset %d in %s\n", edit.Start, filename)
	}
	return nil
}

func (f *Fixer) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

// ApplyEdits applies edits to src from the end of the file backwards, so
// earlier offsets stay valid. An edit overlapping one already applied is
// returned in skipped. Two insertions at the same offset also conflict.
// src is never modified.
func ApplyEdits(src []byte, edits []tt.TextEdit) (fixed []byte, skipped []tt.TextEdit, err error) {
	for _, edit := range edits {
		if edit.Start < 0 || edit.End > len(src) || edit.Start > edit.End {
			return nil, nil, fmt.Errorf("%w: [%d, %d) in %d bytes", ErrEditOutOfRange, edit.Start, edit.End, len(src))
		}
		if edit.OldText != "" && string(src[edit.Start:edit.End]) != edit.OldText {
			return nil, nil, fmt.Errorf("%w: want %q at [%d, %d), have %q",
				ErrEditMismatch, edit.OldText, edit.Start, edit.End, src[edit.Start:edit.End])
		}
	}

	sorted := make([]tt.TextEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start > sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	fixed = append([]byte(nil), src...)
	bound := len(src) + 1
	insertedAtBound := false
	for _, edit := range sorted {
		if edit.End > bound || (edit.IsInsertion() && edit.Start == bound && insertedAtBound) {
			skipped = append(skipped, edit)
			continue
		}
		fixed = edit.Apply(fixed)
		if edit.Start != bound {
			insertedAtBound = false
		}
		bound = edit.Start
		insertedAtBound = insertedAtBound || edit.IsInsertion()
	}
	return fixed, skipped, nil
}
