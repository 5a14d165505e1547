package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExts are the script extensions the compiler processes.
var sourceExts = []string{".ts", ".js", ".mts", ".mjs"}

// skipDirs are never descended into by the recursive pattern.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// collectSourceFiles finds all script files from the given paths,
// excluding declaration files and previously generated output.
// Supports:
//   - Direct file paths: "app.ts"
//   - Directory paths: "./components"
//   - Recursive pattern: "./..."
func collectSourceFiles(paths []string, suffix string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] && isSourceFile(p, suffix) {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, path := range paths {
		// Handle ./... recursive pattern
		if strings.HasSuffix(path, "/...") || path == "..." {
			root := strings.TrimSuffix(strings.TrimSuffix(path, "..."), "/")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if p != root && skipDirs[d.Name()] {
						return filepath.SkipDir
					}
					return nil
				}
				add(p)
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			// Non-recursive
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					add(filepath.Join(path, entry.Name()))
				}
			}
		} else {
			add(path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// isSourceFile reports whether path is a script file to compile.
func isSourceFile(path, suffix string) bool {
	ext := filepath.Ext(path)
	if !hasExt(ext) {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	if strings.HasSuffix(stem, ".d") {
		return false
	}
	return suffix == "" || !strings.HasSuffix(stem, suffix)
}

func hasExt(ext string) bool {
	for _, e := range sourceExts {
		if ext == e {
			return true
		}
	}
	return false
}

// outputFileName inserts suffix before the extension of inputPath.
// Examples:
//
//	app.ts          -> app.gen.ts
//	widgets/list.js -> widgets/list.gen.js
func outputFileName(inputPath, suffix string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + suffix + ext
}
