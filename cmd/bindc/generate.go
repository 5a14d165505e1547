package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-bindc"
	"github.com/grindlemire/go-bindc/internal/bindgen"
	"github.com/grindlemire/go-bindc/internal/log"
)

// fileResult is the outcome of generating one file.
type fileResult struct {
	input   string
	output  string
	result  *bindc.Result
	written bool
	err     error
}

// runGenerate implements the generate subcommand.
// It compiles the templates of every source file and writes the rewritten
// source next to it.
func runGenerate(args []string) error {
	flags := flag.NewFlagSet("generate", flag.ContinueOnError)
	verbose := flags.Bool("v", false, "verbose output")
	jobs := flags.Int("j", runtime.GOMAXPROCS(0), "number of files compiled concurrently")
	suffix := flags.String("suffix", ".gen", "output suffix inserted before the extension")
	root := flags.String("root", ".", "module root for component and route resolution")
	runtimeModule := flags.String("runtime", "", "module the binding primitives are imported from")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *jobs < 1 {
		return fmt.Errorf("-j must be at least 1")
	}
	if *suffix == "" {
		return fmt.Errorf("-suffix cannot be empty")
	}

	// Default to current directory if no paths specified
	paths := flags.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectSourceFiles(paths, *suffix)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found")
	}

	restoreLog, err := setupLogging(*verbose)
	if err != nil {
		return err
	}
	defer restoreLog()

	if *verbose {
		fmt.Printf("Found %d source file(s)\n", len(files))
	}

	c, err := newCompiler(*root, *runtimeModule)
	if err != nil {
		return err
	}

	results := make([]fileResult, len(files))
	var g errgroup.Group
	g.SetLimit(*jobs)
	for i, input := range files {
		g.Go(func() error {
			results[i] = generateFile(c, input, outputFileName(input, *suffix))
			return nil
		})
	}
	_ = g.Wait()

	color := useColor(os.Stderr)
	var errorCount, written int
	for _, r := range results {
		if r.result != nil {
			printDiagnostics(os.Stderr, r.result.Diagnostics, bindgen.SeverityWarning, color)
		}
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.input, r.err)
			errorCount++
			continue
		}
		if r.written {
			written++
			if *verbose {
				fmt.Printf("Processing %s -> %s\n", r.input, r.output)
			}
		}
	}
	log.CLI("generate: %d file(s), %d written, %d failed", len(files), written, errorCount)

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}

	if *verbose {
		fmt.Printf("Successfully generated %d file(s)\n", written)
	}

	return nil
}

// generateFile compiles inputPath and writes outputPath when the source
// changed. A stale output of an unchanged file is removed.
func generateFile(c *compiler, inputPath, outputPath string) fileResult {
	r := fileResult{input: inputPath, output: outputPath}

	res, err := c.compile(inputPath)
	r.result = res
	if err != nil {
		r.err = err
		return r
	}

	if !res.Changed {
		if err := os.Remove(outputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.err = fmt.Errorf("removing stale output: %w", err)
		}
		return r
	}

	if err := os.WriteFile(outputPath, []byte(res.Code), 0644); err != nil {
		r.err = fmt.Errorf("writing file: %w", err)
		return r
	}
	r.written = true
	return r
}
