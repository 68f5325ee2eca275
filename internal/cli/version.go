package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/protoglyph/slatedesk/pkg/slatedesk"
)

const modulePath = "github.com/protoglyph/slatedesk"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the slatedesk version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "slatedesk v%s\nmodule: %s\n", slatedesk.Version, modulePath)
			return nil
		},
	}
}
