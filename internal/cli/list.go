package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protoglyph/slatedesk/pkg/types"
)

func newListCmd() *cobra.Command {
	var (
		search     string
		filtersArg string
		sortField  string
		direction  string
		page       int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list <table> [field=value...]",
		Short: "Query records with optional filters",
		Long: `List queries records from the specified table.

Positional field=value pairs become equality conditions ANDed together.
Full filter chains (other operators, OR conjunctions) are passed with
--filters as a JSON array of conditions.

Example:
  slatedesk list task
  slatedesk list task state=Closed priority=High
  slatedesk list task --search outage --sort short_description
  slatedesk list task --filters '[{"field":"state","operator":"is","value":"new","conjunction":"OR"},{"field":"priority","operator":"is","value":"Critical"}]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := types.QueryParams{
				Page:          page,
				PageSize:      pageSize,
				SortField:     sortField,
				SortDirection: direction,
				Search:        search,
			}

			if filtersArg != "" {
				if err := json.Unmarshal([]byte(filtersArg), &params.Filters); err != nil {
					return fmt.Errorf("invalid --filters JSON: %w", err)
				}
			}
			for _, arg := range args[1:] {
				parts := strings.SplitN(arg, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid filter %q (expected field=value)", arg)
				}
				params.Filters = append(params.Filters, types.FilterCondition{
					Field:    parts[0],
					Operator: types.OpIs,
					Value:    parts[1],
				})
			}

			sess, err := openDefaultSession()
			if err != nil {
				return err
			}
			defer sess.close()

			result, err := sess.store.Query(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), result)
			}

			var columns []string
			if def, ok := sess.store.TableDef(args[0]); ok && def.ListView != nil {
				columns = def.ListView.Columns
			}
			printRecords(cmd.OutOrStdout(), result.Data, columns)
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d records (page size %d)\n",
				result.Page, result.Total, result.PageSize)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "free-text search over string/text fields")
	cmd.Flags().StringVar(&filtersArg, "filters", "", "filter conditions as a JSON array")
	cmd.Flags().StringVar(&sortField, "sort", "", "sort field")
	cmd.Flags().StringVar(&direction, "direction", "", "sort direction: asc or desc")
	cmd.Flags().IntVar(&page, "page", 0, "page number (default 1)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "page size (default from list view)")
	return cmd
}
