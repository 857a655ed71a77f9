// main is the entry point for the ehc CLI.
package main

import "github.com/sastops/ehc/cmd"

func main() {
	cmd.Execute()
}
