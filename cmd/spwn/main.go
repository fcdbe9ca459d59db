// Command spwn is the CLI front end over pkg/cli: a thin main that hands
// its arguments to cli.Run and exits with its reported status code,
// matching cmd/funxy/main.go's own thin-main-over-pkg/cli split.
package main

import (
	"os"

	"github.com/spwn-lang/spwn/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
