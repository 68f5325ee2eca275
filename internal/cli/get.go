package cli

import "github.com/spf13/cobra"

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <sys_id>",
		Short: "Get one record by sys_id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openDefaultSession()
			if err != nil {
				return err
			}
			defer sess.close()

			rec, err := sess.store.GetOne(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}
