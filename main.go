// main package for the conform command-line tool
// Package main is the entry point for the Conform CLI.
package main

import "conform.dev/pkg/conform/cmd"

func main() {
	cmd.Execute()
}
