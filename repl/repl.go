// Package repl implements the interactive Read-Eval-Print loop for the
// minic compiler: each line (or accumulated block) the user enters is run
// through the full compiler.Compile pipeline and its diagnostics/output
// are printed with colored feedback, using chzyer/readline for line
// editing and history and fatih/color for the colored output — the same
// two libraries the teacher's REPL is built on.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/rkumar-dev/minic/compiler"
	"github.com/rkumar-dev/minic/config"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration for one interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
	Opts    config.Options
}

// New creates a Repl ready to Start.
func New(banner, version, author, line, license, prompt string, opts config.Options) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt, Opts: opts}
}

// PrintBannerInfo prints the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to minic!")
	cyanColor.Fprintf(writer, "%s\n", "Type a statement (ending in ';') and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit, '.scope' to print accumulated source")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the main loop: read a line, compile the whole session's
// source accumulated so far (so later statements see earlier
// declarations), and print diagnostics/output.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	var session strings.Builder

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		if line == ".scope" {
			cyanColor.Fprintf(writer, "%s\n", session.String())
			continue
		}

		rl.SaveHistory(line)
		r.runLine(writer, &session, line)
	}
}

func (r *Repl) runLine(writer io.Writer, session *strings.Builder, line string) {
	candidate := session.String() + line + "\n"
	result := compiler.Compile(candidate, r.Opts)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
		return
	}
	session.WriteString(line)
	session.WriteString("\n")
	if result.Output != "" {
		yellowColor.Fprintf(writer, "%s\n", result.Output)
	}
}
