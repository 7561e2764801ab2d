package commands

import (
	"encoding/json"
	"fmt"

	"github.com/satishbabariya/datastore/internal/ui"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// writeOutput encodes v to ui.Out in the json or yaml format.
func writeOutput(format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(ui.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(ui.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q: use table, json or yaml", format)
	}
}
