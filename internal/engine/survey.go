package engine

import (
	"context"

	"conform.dev/pkg/conform/internal/adapter"
	"conform.dev/pkg/conform/internal/lexer"
	m "conform.dev/pkg/conform/internal/model"
	"conform.dev/pkg/conform/internal/parser"
)

// Survey lexes and parses every file and returns its token and node counts
// without running any rules. Files that cannot be read or scanned are kept
// in the result with ParseFailed set so the listing still accounts for them.
func Survey(ctx context.Context, fsAdapter adapter.SourceFSAdapter, paths []m.Path) ([]m.FileStat, error) {
	stats := make([]m.FileStat, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := fsAdapter.ReadFile(ctx, path)
		if err != nil {
			stats = append(stats, m.FileStat{File: path, ParseFailed: true})
			continue
		}

		file, err := lexer.Scan(path, src)
		if err != nil {
			stats = append(stats, m.FileStat{File: path, ParseFailed: true})
			continue
		}

		root := parser.Parse(file)

		nodes := 0
		root.Walk(func(*m.Node) {
			nodes++
		})

		stats = append(stats, m.FileStat{File: path, Tokens: len(file.Tokens), Nodes: nodes})
	}

	return stats, nil
}
