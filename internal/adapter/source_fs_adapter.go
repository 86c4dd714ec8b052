// Package adapter contains infrastructure adapters for the Conform CLI.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "conform.dev/pkg/conform/internal/model"
)

// sourceExtensions are the file extensions the checker considers source
// files of the dialect.
var sourceExtensions = map[string]struct{}{
	".h": {}, ".hpp": {}, ".cpp": {}, ".cc": {}, ".cxx": {}, ".inl": {},
}

// SourceFSAdapter abstracts filesystem operations the engine relies on
// when scanning user projects. It hides direct os access so the check
// pipeline can be tested without touching the disk.
type SourceFSAdapter interface {
	// Discover resolves the given roots into the sorted list of source
	// files to check. A root ending in "..." recurses; a plain directory
	// is scanned without descending; a file path stands for itself.
	// Exclude patterns are regular expressions matched against the path.
	Discover(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// HashFile returns a stable fingerprint (SHA-256) for the file.
	HashFile(ctx context.Context, path m.Path) (string, error)

	// FileInfo returns metadata for a path so callers can check existence
	// or distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// LocalSourceFSAdapter is the disk-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter ready to be
// wired into the engine.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Discover walks the given roots and collects source files, sorted by path
// so downstream processing is deterministic regardless of input order.
func (a *LocalSourceFSAdapter) Discover(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{m.Path("." + string(filepath.Separator) + "...")}
	}

	seen := make(map[m.Path]struct{})

	var files []m.Path

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, recursive := splitRecursive(path)

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot read path %s: %w", root, err)
		}

		if !info.IsDir() {
			appendFile(&files, seen, m.Path(root), patterns)

			continue
		}

		err = filepath.Walk(root, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fi.IsDir() {
				if !recursive && p != root {
					return filepath.SkipDir
				}

				base := filepath.Base(p)
				if base == ".git" || base == "Intermediate" || base == "Saved" {
					return filepath.SkipDir
				}

				return nil
			}

			appendFile(&files, seen, m.Path(p), patterns)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

func appendFile(files *[]m.Path, seen map[m.Path]struct{}, path m.Path, patterns []*regexp.Regexp) {
	if _, ok := sourceExtensions[filepath.Ext(string(path))]; !ok {
		return
	}

	for _, pattern := range patterns {
		if pattern.MatchString(string(path)) {
			return
		}
	}

	if _, dup := seen[path]; dup {
		return
	}

	seen[path] = struct{}{}
	*files = append(*files, path)
}

func splitRecursive(path m.Path) (string, bool) {
	s := string(path)
	if strings.HasSuffix(s, "...") {
		root := strings.TrimSuffix(s, "...")
		root = strings.TrimSuffix(root, string(filepath.Separator))
		root = strings.TrimSuffix(root, "/")

		if root == "" {
			root = "."
		}

		return root, true
	}

	return s, false
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}
