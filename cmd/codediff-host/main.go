// Package main is the entry point for the codediff Lua host.
//
// The host is the reference embedder for the codediff library: it runs a
// Lua script or inline chunk with the codediff module preloaded, the same
// surface a Neovim plugin sees.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/briandipalma/codediff.nvim/internal/api"
	clua "github.com/briandipalma/codediff.nvim/internal/lua"
	"github.com/briandipalma/codediff.nvim/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	reg, err := api.DefaultRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to build API registry: %v\n", err)
		return 1
	}

	state := clua.NewState()
	defer state.Close()

	if err := reg.InjectAll(state.LuaState()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to inject API modules: %v\n", err)
		return 1
	}

	if opts.chunk != "" {
		if err := state.DoString(opts.chunk); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := state.DoFile(opts.script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

type options struct {
	chunk  string
	script string
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.chunk, "exec", "", "Execute an inline Lua chunk")
	flag.StringVar(&opts.chunk, "e", "", "Execute an inline Lua chunk (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "codediff-host - Lua host for the codediff library\n\n")
		fmt.Fprintf(os.Stderr, "Usage: codediff-host [options] [script.lua]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  codediff-host script.lua                                   Run a script\n")
		fmt.Fprintf(os.Stderr, "  codediff-host -e 'print(require(\"codediff\").get_version())'  Run a chunk\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("codediff %s\n", version.Get())
		os.Exit(0)
	}

	if opts.chunk == "" {
		if flag.NArg() != 1 {
			flag.Usage()
			os.Exit(2)
		}
		opts.script = flag.Arg(0)
	}

	return opts
}
