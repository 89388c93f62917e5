// Package main is the entry point for the csrules CLI.
package main

import "csrules.dev/pkg/csrules/cmd"

func main() {
	cmd.Execute()
}
