// Package main is the entry point for the killmap CLI.
package main

import "killmap.dev/pkg/killmap/cmd"

func main() {
	cmd.Execute()
}
