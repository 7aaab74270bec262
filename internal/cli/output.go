package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/uniqueport/internal/model"
)

// emit writes a command result to w in the selected format. The caller
// supplies the pre-rendered text form; JSON and YAML are marshaled from
// the report struct so the three formats always describe the same data.
func emit(w io.Writer, format model.OutputFormat, report interface{}, text string) error {
	switch format {
	case model.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case model.FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encoding YAML output: %w", err)
		}
		fmt.Fprint(w, string(data))
	default:
		fmt.Fprintln(w, text)
	}
	return nil
}
