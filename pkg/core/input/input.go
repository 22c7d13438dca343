// Package input turns project files and request bodies into validated
// feasibility.ProjectInputs. YAML is decoded strictly; JSON goes through the
// lenient SmartParse chain so hand-edited files with comments or trailing
// commas still load.
package input

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"realty_feasibility/pkg/core/feasibility"
	"realty_feasibility/pkg/core/utils"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json" // also accepts Hjson and repairable JSON
)

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and validates a project file. An empty path yields the
// default scenario.
func LoadFile(path string) (feasibility.ProjectInputs, error) {
	if path == "" {
		return feasibility.NewProjectInputs(feasibility.DefaultParams())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return feasibility.ProjectInputs{}, fmt.Errorf("failed to read project file: %w", err)
	}
	in, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return feasibility.ProjectInputs{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Parse decodes data and validates the result.
func Parse(data []byte, format Format) (feasibility.ProjectInputs, error) {
	p, err := Decode(data, format)
	if err != nil {
		return feasibility.ProjectInputs{}, err
	}
	return feasibility.NewProjectInputs(p)
}

// Decode only decodes; range checks happen in feasibility.NewProjectInputs.
func Decode(data []byte, format Format) (feasibility.Params, error) {
	var p feasibility.Params

	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalStrict(data, &p); err != nil {
			return p, fmt.Errorf("failed to parse YAML project: %w", err)
		}
	case FormatJSON, "":
		if _, err := utils.SmartParse(string(data), &p); err != nil {
			return p, fmt.Errorf("failed to parse JSON project: %w", err)
		}
	default:
		return p, fmt.Errorf("unsupported input format %q", format)
	}
	return p, nil
}
