package cli

import "github.com/spf13/cobra"

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <table> <record-json>",
		Short: "Create a record",
		Long: `Create adds a record to the table. Field values may be bare scalars or
{"value","display_value"} pairs; sys_id and timestamps are generated.

Example:
  slatedesk create task '{"short_description":"Fix login page","state":{"value":"new","display_value":"New"}}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := decodeRecordArg(args[1])
			if err != nil {
				return err
			}

			sess, err := openDefaultSession()
			if err != nil {
				return err
			}
			defer sess.close()

			rec, err := sess.store.Create(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}
