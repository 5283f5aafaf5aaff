// Command webmessagectl is a demo CLI driving the host façade against a
// local file-backed persistence port. It exercises every operation in
// the host symbol table end to end, for manual testing and as a
// reference integration for host implementers.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
