package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "conform.dev/pkg/conform/internal/model"
	"conform.dev/pkg/conform/internal/rules"
)

func TestRunnerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input is an error", func(t *testing.T) {
		runner := NewRunner(newTestChecker(t, rules.Config{}), Options{})

		_, err := runner.Run(ctx, nil)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrViolations)
	})

	t.Run("reports are sorted by path", func(t *testing.T) {
		dir := t.TempDir()
		b := writeSource(t, dir, "b.h", "class AEnemy : public AActor\n{\n};\n")
		a := writeSource(t, dir, "a.h", "class APawn : public AActor\n{\n};\n")

		runner := NewRunner(newTestChecker(t, rules.Config{}), Options{Parallel: 4})

		report, err := runner.Run(ctx, []m.Path{b, a})
		require.NoError(t, err)
		require.Len(t, report.Files, 2)
		assert.Equal(t, a, report.Files[0].File)
		assert.Equal(t, b, report.Files[1].File)
	})

	t.Run("input order does not change the report", func(t *testing.T) {
		dir := t.TempDir()
		paths := []m.Path{
			writeSource(t, dir, "one.h", "enum EColor\n{\n};\n"),
			writeSource(t, dir, "two.h", "bool IsAlive;\n"),
			writeSource(t, dir, "three.h", "class AEnemy : public AActor\n{\n};\n"),
		}

		runner := NewRunner(newTestChecker(t, rules.Config{}), Options{Parallel: 2})

		forward, err := runner.Run(ctx, paths)
		require.NoError(t, err)

		reversed := []m.Path{paths[2], paths[1], paths[0]}

		backward, err := runner.Run(ctx, reversed)
		require.NoError(t, err)

		assert.Equal(t, forward, backward)
	})

	t.Run("error severity yields the sentinel", func(t *testing.T) {
		dir := t.TempDir()
		path := writeSource(t, dir, "unsafe.h", "class FBase\n{\npublic:\n\tvirtual void Run();\n};\n")

		runner := NewRunner(newTestChecker(t, rules.Config{}), Options{})

		report, err := runner.Run(ctx, []m.Path{path})
		require.ErrorIs(t, err, ErrViolations)
		assert.True(t, report.HasErrors())
	})

	t.Run("fail fast still returns a report", func(t *testing.T) {
		dir := t.TempDir()

		paths := []m.Path{writeSource(t, dir, "unsafe.h", "class FBase\n{\npublic:\n\tvirtual void Run();\n};\n")}
		for _, name := range []string{"c1.h", "c2.h", "c3.h"} {
			paths = append(paths, writeSource(t, dir, name, "class AEnemy : public AActor\n{\n};\n"))
		}

		runner := NewRunner(newTestChecker(t, rules.Config{}), Options{Parallel: 1, FailFast: true})

		report, err := runner.Run(ctx, paths)
		require.ErrorIs(t, err, ErrViolations)
		assert.True(t, report.HasErrors())
		assert.NotEmpty(t, report.Files)
	})

	t.Run("spill path produces the same report", func(t *testing.T) {
		dir := t.TempDir()
		paths := []m.Path{
			writeSource(t, dir, "one.h", "enum EColor\n{\n};\n"),
			writeSource(t, dir, "two.h", "bool IsAlive;\n"),
			writeSource(t, dir, "three.h", "class AEnemy : public AActor\n{\n};\n"),
		}

		inMemory, err := NewRunner(newTestChecker(t, rules.Config{}), Options{}).Run(ctx, paths)
		require.NoError(t, err)

		spilled, err := NewRunner(newTestChecker(t, rules.Config{}), Options{SpillThreshold: 1}).Run(ctx, paths)
		require.NoError(t, err)

		assert.Equal(t, inMemory, spilled)
	})
}
