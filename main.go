// Package main is the entry point for the carrental CLI.
package main

import (
	"carrental/cli/cmd"
)

func main() {
	cmd.Execute()
}
