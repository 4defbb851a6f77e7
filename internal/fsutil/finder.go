// Package fsutil contains small filesystem helpers for locating plan files.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FindFiles walks the given path and returns all files whose extension is in
// exts (e.g. ".hcl", ".yaml"). A file path is returned as-is when its
// extension matches; a directory is walked recursively. Results are sorted
// for deterministic load order.
func FindFiles(path string, exts ...string) ([]string, error) {
	wanted := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		wanted[ext] = struct{}{}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if !info.IsDir() {
		if _, ok := wanted[filepath.Ext(path)]; ok {
			return []string{path}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if _, ok := wanted[filepath.Ext(p)]; ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
