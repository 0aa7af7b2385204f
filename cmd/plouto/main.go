// Command plouto runs the Plouto5 logistics portal shell in a terminal,
// either in-process or shared over a unix socket with attached renderers.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
