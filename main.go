package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/qexat/vism-go/backend"
	"github.com/qexat/vism-go/compiler"
	"github.com/qexat/vism-go/config"
	"github.com/qexat/vism-go/diag"
	"github.com/qexat/vism-go/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
		noColor     = flag.Bool("no-color", false, "Disable colored diagnostics")
		configPath  = flag.String("config", "", "Path to a config file (default: platform config dir)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("vism %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *noColor {
		cfg.Display.ColorOutput = false
	}

	srcFile := flag.Arg(0)
	if *verboseMode {
		fmt.Printf("Compiling %s\n", srcFile)
	}

	instrs, err := compiler.CompileFile(srcFile, cfg)
	if err != nil {
		reportCompileError(err, cfg)
		os.Exit(1)
	}

	if *verboseMode {
		fmt.Printf("Emitted %d IR instructions\n", len(instrs))
	}

	program, err := backend.Lower(instrs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backend error: %v\n", err)
		os.Exit(1)
	}

	machine := vm.New(os.Stdout, os.Stderr)
	if err := machine.Run(program); err != nil {
		// The VM itself already wrote a diagnostic to os.Stderr before
		// halting (strict mode is the default); just set the exit code.
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func reportCompileError(err error, cfg *config.Config) {
	if errs, ok := err.(diag.Errors); ok {
		errs.RenderAll(os.Stderr, cfg.Display.ColorOutput)
		return
	}
	fmt.Fprintf(os.Stderr, "Compile error: %v\n", err)
}

func printHelp() {
	fmt.Printf(`vism %s

Usage: vism [options] <source-file>

Options:
  -help            Show this help message
  -version         Show version information
  -verbose         Enable verbose output
  -no-color        Disable colored diagnostics
  -config FILE     Path to a config file (default: platform config dir)
`, Version)
}
