// Package main provides the CLI for the bindc template compiler.
//
// Usage:
//
//	bindc generate [options] [path...]    Compile templates into .gen files
//	bindc check [options] [path...]       Report diagnostics without writing
//	bindc help                            Show help
//
// Examples:
//
//	bindc generate ./...        Recursively compile all script files
//	bindc generate ./components Process a specific directory
//	bindc check --strict app.ts Fail on warnings
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `bindc - compile-time template binding compiler

Usage:
  bindc <command> [options] [path...]

Commands:
  generate    Compile html templates and write <name>.gen.<ext> files
  check       Compile without writing and report diagnostics
  version     Print version information
  help        Show this help message

Generate options:
  -v          Verbose output
  -j N        Compile up to N files concurrently (default: number of CPUs)
  -suffix S   Output suffix inserted before the extension (default: .gen)
  -root DIR   Module root for component and route resolution (default: .)
  -runtime M  Module the binding primitives are imported from

Check options:
  -v          Verbose output
  -strict     Treat warnings as errors
  -root DIR   Module root for component and route resolution (default: .)

Examples:
  bindc generate ./...              Recursively process all .ts and .js files
  bindc generate ./components       Process files in a directory
  bindc generate -j 4 -v ./...      Verbose output with four workers
  bindc check app.ts                Report diagnostics for one file
  bindc check -strict ./...         Fail when any file has warnings

Colors are used when stderr is a terminal and NO_COLOR is unset.
Set BINDC_LOG=FILE to append compiler logs to FILE.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		if err := runGenerate(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := runCheck(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("bindc version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
