package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
}

func TestGatherScorePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mscx", "b.mscx", "notes.txt"} {
		assert.Nil(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	all := GatherScorePaths(dir, 0)
	assert.Len(t, all, 2)

	capped := GatherScorePaths(dir, 1)
	assert.Len(t, capped, 1)
}

func TestGatherScorePathsMissingDir(t *testing.T) {
	assert.Panics(t, func() {
		GatherScorePaths(filepath.Join(t.TempDir(), "absent"), 0)
	})
}

func TestResolveIndex(t *testing.T) {
	i, ok := ResolveIndex(0, 3)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = ResolveIndex(-1, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = ResolveIndex(3, 3)
	assert.False(t, ok)

	_, ok = ResolveIndex(-4, 3)
	assert.False(t, ok)
}
