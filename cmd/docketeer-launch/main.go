// Command docketeer-launch stands in for a browser executable. Point an
// automation tool's executable path at it (docketeer does this through
// PUPPETEER_EXECUTABLE_PATH) and it runs the browser in a container instead.
package main

import (
	"os"

	"github.com/RevCBH/docketeer/internal/cli"
)

func main() {
	app := cli.NewLaunch()
	os.Exit(app.ExitCode(app.Execute(), os.Stderr))
}
