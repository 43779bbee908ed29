package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

func RecreateDir(path string) {
	err := os.RemoveAll(path)
	if err != nil {
		panic("Could not delete dir: " + err.Error())
	}
	err = os.MkdirAll(path, os.ModePerm)
	if err != nil {
		panic("Could not create dir: " + err.Error())
	}
}

func Keys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := Keys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// GatherScorePaths walks root and collects .mscx files, up to maxNum when
// maxNum > 0.
func GatherScorePaths(root string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(s, ".mscx") {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	err := filepath.WalkDir(root, walk)
	if err != nil {
		panic("Could not walk scores dir: " + err.Error())
	}
	return res
}

// ResolveIndex maps a possibly-negative index into [0, n); negative values
// count from the end. The second result reports whether it is in range.
func ResolveIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
