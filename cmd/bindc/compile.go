package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/grindlemire/go-bindc"
	"github.com/grindlemire/go-bindc/internal/ctfe"
)

// compiler holds the settings shared by every file of one run.
type compiler struct {
	root    string // absolute module root
	modules fs.FS
	cache   *ctfe.Cache
	runtime string
}

func newCompiler(root, runtime string) (*compiler, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}
	return &compiler{
		root:    abs,
		modules: os.DirFS(abs),
		cache:   ctfe.NewCache(),
		runtime: runtime,
	}, nil
}

// compile reads and compiles one file. Files inside the module root are
// named relative to it so their imports can be resolved.
func (c *compiler) compile(inputPath string) (*bindc.Result, error) {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	filename := filepath.ToSlash(inputPath)
	opts := []bindc.Option{bindc.WithCache(c.cache)}
	if c.runtime != "" {
		opts = append(opts, bindc.WithRuntimeModule(c.runtime))
	}
	if rel, ok := c.relative(inputPath); ok {
		filename = rel
		opts = append(opts, bindc.WithModules(c.modules))
	}
	return bindc.Compile(filename, string(source), opts...)
}

func (c *compiler) relative(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(c.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
