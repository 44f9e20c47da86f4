// revtab - review page to table converter
//
// revtab turns review pages pasted from JD and Tmall into a CSV table of
// author, date and review text.
package main

import (
	"os"

	"github.com/ccollicutt/revtab/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
