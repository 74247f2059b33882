// Command minic is the CLI entry point for the compiler: it runs in REPL
// mode (default, live statement-by-statement compilation with colored
// diagnostics), file mode (compile a whole source file once and print its
// program output), or server mode (`minic server <port>`, the HTTP API).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/rkumar-dev/minic/compiler"
	"github.com/rkumar-dev/minic/config"
	"github.com/rkumar-dev/minic/repl"
	"github.com/rkumar-dev/minic/server"
)

var VERSION = "v1.0.0"
var AUTHOR = "minic maintainers"
var LICENSE = "MIT"
var PROMPT = "minic >>> "

var BANNER = `
 _ __ ___ (_)_ __ (_) ___
| '_ ' _ \| | '_ \| |/ __|
| | | | | | | | | | | (__
|_| |_| |_|_|_| |_|_|\___|
`

var LINE = "----------------------------------------------------------------"

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	persist := flag.Bool("persist", false, "accepted for CLI parity with the HTTP server; this CLI does not persist runs")
	dumpJSON := flag.Bool("json", false, "in file mode, print the full compilation result as JSON instead of just program output")
	flag.Parse()
	_ = persist

	opts := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			redColor.Fprintf(os.Stderr, "[CONFIG ERROR] %v\n", err)
			os.Exit(1)
		}
		opts = loaded
	}

	args := flag.Args()
	if len(args) == 0 {
		repler := repl.New(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT, opts)
		repler.Start(os.Stdin, os.Stdout)
		return
	}

	if args[0] == "server" {
		if len(args) < 2 {
			redColor.Fprintf(os.Stderr, "[USAGE ERROR] Missing port for server mode. Usage: minic server <port>\n")
			os.Exit(1)
		}
		port, err := strconv.Atoi(args[1])
		if err != nil {
			redColor.Fprintf(os.Stderr, "[USAGE ERROR] Invalid port '%s'\n", args[1])
			os.Exit(1)
		}
		srv := server.New(port, opts)
		if err := srv.Start(); err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] %v\n", err)
			os.Exit(1)
		}
		return
	}

	runFile(args[0], opts, *dumpJSON)
}

func runFile(path string, opts config.Options, dumpJSON bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] Could not read file '%s': %v\n", path, err)
		os.Exit(1)
	}

	result := compiler.Compile(string(data), opts)

	if dumpJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			redColor.Fprintf(os.Stderr, "[OUTPUT ERROR] %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			redColor.Fprintf(os.Stderr, "%s\n", e.Error())
		}
		os.Exit(1)
	}

	fmt.Println(result.Output)
	if result.StepLimitExceeded {
		cyanColor.Fprintf(os.Stderr, "[warning] execution stopped after reaching the configured step limit\n")
	}
}
