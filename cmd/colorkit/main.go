// Package main provides the colorkit command line tool: color parsing,
// conversion, manipulation, schemes and contrast checks, Lua scripting
// and an MCP tool server.
package main

import (
	"io"
	"os"
)

// Version is the current version of colorkit.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

// execute runs the command line with args and returns the exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	a.shutdown()
	if err != nil {
		return 1
	}
	return 0
}
