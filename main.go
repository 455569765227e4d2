// main package for the remirror command-line tool
// Package main is the entry point for the remirror CLI.
package main

import "remirror.dev/pkg/remirror/cmd"

func main() {
	cmd.Execute()
}
