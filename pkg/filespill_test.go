package pkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill", func(t *testing.T) {
		spill, err := NewFileSpill[int]("conform-test-*.gob")
		require.NoError(t, err)
		require.NotNil(t, spill)
		require.Contains(t, spill.Path(), "conform-test-")
		defer spill.Close()
	})

	t.Run("Append and Get", func(t *testing.T) {
		spill, err := NewFileSpill[string]("conform-test-*.gob")
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append("first"))
		require.NoError(t, spill.Append("second"))

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, "first", val)

		val, err = spill.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val)

		val, err = spill.Get(3)
		require.Error(t, err)
		require.Equal(t, "", val)
	})

	t.Run("Len returns correct count", func(t *testing.T) {
		spill, err := NewFileSpill[int]("conform-test-*.gob")
		require.NoError(t, err)
		defer spill.Close()

		require.Equal(t, uint64(0), spill.Len())

		require.NoError(t, spill.Append(1))
		require.Equal(t, uint64(1), spill.Len())

		require.NoError(t, spill.Append(2))
		require.NoError(t, spill.Append(3))
		require.Equal(t, uint64(3), spill.Len())
	})

	t.Run("Range iterates all items in order", func(t *testing.T) {
		spill, err := NewFileSpill[int]("conform-test-*.gob")
		require.NoError(t, err)
		defer spill.Close()

		for i := 1; i <= 5; i++ {
			require.NoError(t, spill.Append(i*10))
		}

		var got []int
		err = spill.Range(func(index uint64, item int) error {
			require.Equal(t, uint64(len(got)), index)
			got = append(got, item)

			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []int{10, 20, 30, 40, 50}, got)
	})

	t.Run("Range stops on callback error", func(t *testing.T) {
		spill, err := NewFileSpill[int]("conform-test-*.gob")
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append(1))
		require.NoError(t, spill.Append(2))

		stop := errors.New("stop")
		visited := 0

		err = spill.Range(func(uint64, int) error {
			visited++
			return stop
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 1, visited)
	})

	t.Run("works with struct items", func(t *testing.T) {
		type record struct {
			Name  string
			Count int
		}

		spill, err := NewFileSpill[record]("conform-test-*.gob")
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append(record{Name: "a.h", Count: 2}))

		got, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, record{Name: "a.h", Count: 2}, got)
	})

	t.Run("Close then Remove", func(t *testing.T) {
		spill, err := NewFileSpill[int]("conform-test-*.gob")
		require.NoError(t, err)

		require.NoError(t, spill.Append(1))
		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close()) // idempotent
		require.NoError(t, spill.Remove())
	})
}
