package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List registered tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openDefaultSession()
			if err != nil {
				return err
			}
			defer sess.close()

			defs := sess.store.Tables()
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), defs)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "name\tlabel\tfields\tpage_size")
			for _, def := range defs {
				fieldNames := make([]string, len(def.Fields))
				for i, f := range def.Fields {
					fieldNames[i] = f.Name
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
					def.Name, def.Label, strings.Join(fieldNames, ","), def.DefaultPageSize())
			}
			return tw.Flush()
		},
	}
}
