// Package main provides the slatedesk CLI binary.
package main

import (
	"os"

	"github.com/protoglyph/slatedesk/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
