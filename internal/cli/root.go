// Package cli implements the slatedesk command-line interface: store
// lifecycle, table inspection, record CRUD, and the dev server.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/protoglyph/slatedesk/pkg/slatedesk"
	"github.com/protoglyph/slatedesk/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "slatedesk" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "slatedesk",
		Short: "Slatedesk is a mock record-platform backend for UI prototyping",
		Long: `Slatedesk serves table schemas and records for rapid UI prototyping:
an in-memory store with filtering, sorting, and pagination, persisted
best-effort as JSON snapshots.`,
		Version: slatedesk.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.slatedesk-data)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newTablesCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newCreateCmd())
	root.AddCommand(newUpdateCmd())
	root.AddCommand(newDeleteCmd())

	return root
}

// Execute runs the root command and returns the process exit code. Not-found
// and validation failures are user errors; everything else is a system error.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if isUserError(err) {
			return exitUserError
		}
		return exitSysError
	}
	return exitSuccess
}

// isUserError reports whether err stems from caller input rather than the
// environment.
func isUserError(err error) bool {
	return errors.Is(err, types.ErrTableNotFound) ||
		errors.Is(err, types.ErrRecordNotFound) ||
		errors.Is(err, types.ErrTableExists) ||
		errors.Is(err, types.ErrInvalidTableDef) ||
		errors.Is(err, types.ErrInvalidFieldDef) ||
		errors.Is(err, types.ErrInvalidFieldType)
}
