// Package scan lists source images and indexes candidate folders by identifier.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tripletmatch/internal/ident"
)

// Index maps an identifier to the candidate paths that share it, in the
// order the walk found them.
type Index map[string][]string

// First returns the first candidate path for id. When an identifier has
// multiple candidates, the first by walk order is the one used.
func (ix Index) First(id string) (string, bool) {
	paths, ok := ix[id]
	if !ok || len(paths) == 0 {
		return "", false
	}
	return paths[0], true
}

// Files returns the total number of indexed paths.
func (ix Index) Files() int {
	n := 0
	for _, paths := range ix {
		n += len(paths)
	}
	return n
}

// ListSource returns the names of the .jpg files directly inside dir
// (non-recursive, extension matched case-insensitively), sorted
// lexicographically. The sorted position of each name is its group index in
// the destination, so the order must not change after this point.
func ListSource(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source folder: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isJPEG(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// BuildIndex walks root recursively and indexes every .jpg file that yields
// an identifier. Files without one are skipped silently. A missing or
// unreadable root produces an empty index rather than an error, matching the
// empty enumeration a missing candidate folder is defined to give.
//
// filepath.WalkDir visits entries in lexical order per directory, so the
// candidate lists are deterministic for a fixed tree with no extra sort.
func BuildIndex(root string) Index {
	idx := make(Index)
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree contributes nothing
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !isJPEG(name) {
			return nil
		}
		if id, ok := ident.Extract(name); ok {
			idx[id] = append(idx[id], path)
		}
		return nil
	})
	return idx
}

func isJPEG(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".jpg")
}
