package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grindlemire/go-bindc/internal/bindgen"
	"github.com/grindlemire/go-bindc/internal/log"
)

// runCheck implements the check subcommand.
// It compiles source files without writing output and reports their
// diagnostics. Useful in CI to catch templates that were left unoptimized.
func runCheck(args []string) error {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	verbose := flags.Bool("v", false, "verbose output")
	strict := flags.Bool("strict", false, "treat warnings as errors")
	root := flags.String("root", ".", "module root for component and route resolution")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// Default to current directory if no paths specified
	paths := flags.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectSourceFiles(paths, ".gen")
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
		fmt.Printf("Checking %d source file(s)\n", len(files))
	}

	c, err := newCompiler(*root, "")
	if err != nil {
		return err
	}

	level := bindgen.SeverityWarning
	if *verbose {
		level = bindgen.SeverityInfo
	}
	color := useColor(os.Stderr)

	// Check each file
	var errorCount int
	for _, inputPath := range files {
		if *verbose {
			fmt.Printf("Checking %s\n", inputPath)
		}

		res, err := c.compile(inputPath)
		if res != nil {
			printDiagnostics(os.Stderr, res.Diagnostics, level, color)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", inputPath, err)
			errorCount++
			continue
		}
		if *strict && res.Warnings() > 0 {
			errorCount++
		}
	}
	log.CLI("check: %d file(s), %d failed", len(files), errorCount)

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}

	if *verbose {
		fmt.Printf("All %d file(s) passed checks\n", len(files))
	}

	return nil
}
