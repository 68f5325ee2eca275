// Package schema loads and saves table definitions: one JSON document per
// table under a schemas directory. Definitions may embed seed records for
// backward compatibility; a snapshot in the records store wins over embedded
// seeds for the same table.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/protoglyph/slatedesk/pkg/types"
)

// LoadDir reads every *.json file in dir as a TableDef, validates it, and
// returns the definitions in file-name order. A missing directory is not an
// error; it yields no definitions.
func LoadDir(dir string) ([]types.TableDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing schema dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	defs := make([]types.TableDef, 0, len(names))
	for _, name := range names {
		def, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadFile reads and validates a single table definition document.
func LoadFile(path string) (types.TableDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TableDef{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var def types.TableDef
	if err := json.Unmarshal(data, &def); err != nil {
		return types.TableDef{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return types.TableDef{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// WriteDef saves a definition as <name>.json in dir, creating the directory
// if needed. Seed records are not persisted here; records belong to the
// records store.
func WriteDef(dir string, def types.TableDef) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating schema dir: %w", err)
	}
	def.Records = nil
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s definition: %w", def.Name, err)
	}
	path := filepath.Join(dir, def.Name+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
