package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/gnolang/jsxlint/internal"
	"github.com/gnolang/jsxlint/internal/jsx"
	tt "github.com/gnolang/jsxlint/internal/types"
	"github.com/gnolang/jsxlint/scanner"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ProgressWriter receives the progress bar shown while a directory is
// processed.
var ProgressWriter io.Writer = os.Stderr

type LintEngine interface {
	Run(documentPath string) ([]tt.Issue, error)
	RunSource(filename string, source, document []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// Source is an in-memory source file together with its ESTree document.
type Source struct {
	Filename string
	Source   []byte
	Document []byte
}

// New creates an engine configured by the file at configurationPath. An
// empty path selects the default configuration.
func New(configurationPath string) (*internal.Engine, error) {
	config := DefaultConfig()
	if configurationPath != "" {
		var err error
		config, err = LoadConfig(configurationPath)
		if err != nil {
			return nil, err
		}
	}

	enc, err := jsx.ParseOffsetEncoding(config.OffsetEncoding)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	engine, err := internal.NewEngine(config.Rules, enc)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if config.CacheDir != "" {
		var deps []string
		if configurationPath != "" {
			deps = append(deps, configurationPath)
		}
		cache, err := internal.NewCache(config.CacheDir, deps...)
		if err != nil {
			return nil, err
		}
		if config.CacheMaxAge != "" {
			maxAge, err := time.ParseDuration(config.CacheMaxAge)
			if err != nil {
				return nil, fmt.Errorf("invalid configuration: cache-max-age: %w", err)
			}
			cache.SetMaxAge(maxAge)
		}
		engine.SetCache(cache)
	}

	return engine, nil
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources []Source,
	processor func(LintEngine, Source) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.String("source", source.Filename), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessFiles processes every path and returns all issues found. Errors
// of individual paths are joined; issues of the other paths are kept.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var (
		allIssues []tt.Issue
		errs      []error
	)
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			if ctx.Err() != nil {
				return nil, err
			}
			errs = append(errs, err)
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, errors.Join(errs...)
}

// ProcessPath processes a single document, the document of a source file,
// or every document under a directory.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		documentPath, ok := resolveDocument(path)
		if !ok {
			return []tt.Issue{}, nil
		}
		fileIssues, err := processor(engine, documentPath)
		if err != nil {
			return []tt.Issue{}, err
		}
		return fileIssues, nil
	}

	files, err := scanner.New(path, jsx.DocumentSuffix).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}
	if len(files) == 0 {
		return []tt.Issue{}, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(ProgressWriter),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	defer fmt.Fprintln(ProgressWriter)

	// one slot per file keeps the output in path order
	results := make([][]tt.Issue, len(files))

	var (
		errMu sync.Mutex
		errs  []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		i, fp := i, file.Path
		g.Go(func() error {
			// stop scheduling work once the caller gives up
			if err := gctx.Err(); err != nil {
				return err
			}

			fileIssues, err := processor(engine, fp)
			_ = bar.Add(1)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
				return nil
			}
			results[i] = fileIssues
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	issues := make([]tt.Issue, 0)
	for _, result := range results {
		issues = append(issues, result...)
	}
	return issues, errors.Join(errs...)
}

// resolveDocument maps a file argument to the document describing it.
// Both the document itself and its source file are accepted.
func resolveDocument(path string) (string, bool) {
	if jsx.IsDocument(path) {
		return path, true
	}
	documentPath := jsx.DocumentPath(path)
	if _, err := os.Stat(documentPath); err == nil {
		return documentPath, true
	}
	return "", false
}

func ProcessFile(engine LintEngine, documentPath string) ([]tt.Issue, error) {
	return engine.Run(documentPath)
}

func ProcessSource(engine LintEngine, source Source) ([]tt.Issue, error) {
	return engine.RunSource(source.Filename, source.Source, source.Document)
}

// Config represents the overall configuration with a name and the rules.
type Config struct {
	Name string `yaml:"name"`
	// OffsetEncoding is the unit of the offsets in ESTree documents:
	// utf16 (JavaScript parsers) or byte.
	OffsetEncoding string                   `yaml:"offset-encoding,omitempty"`
	CacheDir       string                   `yaml:"cache-dir,omitempty"`
	CacheMaxAge    string                   `yaml:"cache-max-age,omitempty"`
	Rules          map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Name:           "jsxlint",
		OffsetEncoding: jsx.OffsetUTF16.String(),
		Rules:          map[string]tt.ConfigRule{},
	}
}

// LoadConfig reads and decodes a configuration file. Rule options are
// validated when the engine is built.
func LoadConfig(configurationPath string) (Config, error) {
	config := DefaultConfig()

	// Read the configuration file
	f, err := os.Open(configurationPath)
	if err != nil {
		return config, fmt.Errorf("error opening configuration: %w", err)
	}
	defer f.Close()

	// Parse the configuration file
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing configuration %s: %w", configurationPath, err)
	}

	return config, nil
}
