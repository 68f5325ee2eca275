package cli

import "github.com/spf13/cobra"

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <table> <sys_id> <patch-json>",
		Short: "Update a record",
		Long: `Update shallow-merges the patch over the existing record: each patch
field replaces the prior value wholesale. The sys_id cannot be changed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := decodeRecordArg(args[2])
			if err != nil {
				return err
			}

			sess, err := openDefaultSession()
			if err != nil {
				return err
			}
			defer sess.close()

			rec, err := sess.store.Update(cmd.Context(), args[0], args[1], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}
