// gorand validates random number streams against the NIST statistical
// test suite from the command line, without a running server.
package main

import (
	"os"

	"gorand/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
