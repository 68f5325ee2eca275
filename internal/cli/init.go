package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/protoglyph/slatedesk/internal/paths"
	"github.com/protoglyph/slatedesk/internal/schema"
	"github.com/protoglyph/slatedesk/pkg/types"
)

// starterTable is scaffolded by init so a fresh workspace has something to
// query immediately.
var starterTable = types.TableDef{
	Name:        "task",
	Label:       "Task",
	PluralLabel: "Tasks",
	Fields: []types.FieldDef{
		{Name: "short_description", Type: types.FieldTypeString, Label: "Short description", Required: true, MaxLength: 160},
		{Name: "description", Type: types.FieldTypeText, Label: "Description"},
		{Name: "state", Type: types.FieldTypeChoice, Label: "State", Choices: []types.Choice{
			{Value: "new", Label: "New"},
			{Value: "in_progress", Label: "In Progress"},
			{Value: "closed", Label: "Closed"},
		}},
		{Name: "priority", Type: types.FieldTypeChoice, Label: "Priority", Choices: []types.Choice{
			{Value: "1", Label: "Critical"},
			{Value: "2", Label: "High"},
			{Value: "3", Label: "Moderate"},
			{Value: "4", Label: "Low"},
		}},
		{Name: "assigned_to", Type: types.FieldTypeReference, Label: "Assigned to", Reference: "user"},
		{Name: "active", Type: types.FieldTypeBoolean, Label: "Active"},
		{Name: "due_date", Type: types.FieldTypeDate, Label: "Due date"},
	},
	ListView: &types.ListView{
		Columns:     []string{"short_description", "state", "priority", "assigned_to"},
		DefaultSort: "short_description",
		PageSize:    20,
	},
	FormView: &types.FormView{
		Sections: []types.FormSection{
			{Label: "Details", Fields: []string{"short_description", "description", "state", "priority"}},
			{Label: "Assignment", Fields: []string{"assigned_to", "active", "due_date"}},
		},
	},
}

// starterUserTable backs the task table's assigned_to reference.
var starterUserTable = types.TableDef{
	Name:        "user",
	Label:       "User",
	PluralLabel: "Users",
	Fields: []types.FieldDef{
		{Name: "name", Type: types.FieldTypeString, Label: "Name", Required: true},
		{Name: "email", Type: types.FieldTypeEmail, Label: "Email"},
		{Name: "phone", Type: types.FieldTypePhone, Label: "Phone"},
	},
	ListView: &types.ListView{
		Columns:     []string{"name", "email"},
		DefaultSort: "name",
		PageSize:    20,
	},
	RelatedLists: []types.RelatedList{
		{Table: "task", Field: "assigned_to", Label: "Assigned tasks"},
	},
}

func newInitCmd() *cobra.Command {
	var withStarter bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize slatedesk configuration and data directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(flags.configDir)
			if err != nil {
				return fmt.Errorf("resolve config dir: %w", err)
			}
			if err := ensureConfigDir(configDir); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			if err := ensureDefaultConfigFile(configDir); err != nil {
				return fmt.Errorf("write default config: %w", err)
			}

			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			for _, dir := range []string{cfg.SchemaDir, cfg.RecordsDir} {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create %s: %w", dir, err)
				}
			}

			if withStarter {
				for _, def := range []types.TableDef{starterUserTable, starterTable} {
					path := filepath.Join(cfg.SchemaDir, def.Name+".json")
					if _, err := os.Stat(path); err == nil {
						continue // never clobber an existing definition
					}
					if err := schema.WriteDef(cfg.SchemaDir, def); err != nil {
						return fmt.Errorf("write starter schema: %w", err)
					}
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Slatedesk initialized")
			fmt.Fprintln(cmd.OutOrStdout(), "  config: ", configDir)
			fmt.Fprintln(cmd.OutOrStdout(), "  schemas:", cfg.SchemaDir)
			fmt.Fprintln(cmd.OutOrStdout(), "  records:", cfg.RecordsDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withStarter, "starter", true, "scaffold starter task and user tables")
	return cmd
}
