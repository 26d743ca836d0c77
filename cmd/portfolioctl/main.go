// Command portfolioctl is a terminal client for the portfolio backend: it
// signs in, prints the valued portfolio and exports the token table.
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
