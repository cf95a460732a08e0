package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gnolang/jsxlint/internal/jsx"
	tt "github.com/gnolang/jsxlint/internal/types"
	"go.uber.org/zap"
)

// settleDelay lets a parser finish rewriting a document before it is read.
const settleDelay = 100 * time.Millisecond

var ErrAlreadyWatching = errors.New("already watching")

// ReportFunc receives the issues of a document re-linted in watch mode.
type ReportFunc func(documentPath string, issues []tt.Issue)

// StartWatching re-lints every ESTree document written under dirs until
// StopWatching is called. A nil report logs the results instead.
func (e *Engine) StartWatching(dirs []string, logger *zap.Logger, report ReportFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isWatching {
		return ErrAlreadyWatching
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.watchDirs = dirs
	e.logger = logger
	e.report = report
	if e.report == nil {
		e.report = e.logIssues
	}
	e.done = make(chan struct{})
	e.isWatching = true

	go e.watchLoop(watcher, e.done)
	return nil
}

func (e *Engine) StopWatching() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isWatching {
		return nil
	}

	e.isWatching = false
	err := e.watcher.Close()
	<-e.done
	return err
}

func (e *Engine) watchLoop(watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				e.logger.Error("error watching directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !jsx.IsDocument(event.Name) {
		return
	}

	// coalesce the burst of writes a parser produces into one run
	time.Sleep(settleDelay)
	issues, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("error linting document", zap.String("path", event.Name), zap.Error(err))
		return
	}
	e.report(event.Name, issues)
}

func (e *Engine) logIssues(documentPath string, issues []tt.Issue) {
	if len(issues) == 0 {
		e.logger.Info("no issues found", zap.String("path", documentPath))
		return
	}

	e.logger.Info("found issues", zap.String("path", documentPath), zap.Int("count", len(issues)))
	for _, issue := range issues {
		e.logger.Info(issue.Message,
			zap.String("rule", issue.Rule),
			zap.String("file", issue.Filename),
			zap.Int("line", issue.Start.Line),
			zap.Int("column", issue.Start.Column),
		)
	}
}
