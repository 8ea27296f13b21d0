package warnings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown filter file format")

// Format is the encoding of a filter file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FilterFile is the on-disk form of a filter list. Rules are evaluated top
// to bottom and the first match wins.
type FilterFile struct {
	Filters []FilterRule `yaml:"filters" toml:"filters"`
}

// FilterRule is a single filter as written in a file. Message and Module
// are regular expressions.
type FilterRule struct {
	Action   string `yaml:"action" toml:"action"`
	Message  string `yaml:"message,omitempty" toml:"message,omitempty"`
	Category string `yaml:"category,omitempty" toml:"category,omitempty"`
	Module   string `yaml:"module,omitempty" toml:"module,omitempty"`
	Line     int    `yaml:"line,omitempty" toml:"line,omitempty"`
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadFilters reads and compiles a YAML or TOML filter file.
func LoadFilters(path string) ([]Filter, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter file %s: %w", path, err)
	}

	filters, err := ParseFilters(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return filters, nil
}

// ParseFilters decodes and compiles a filter list.
func ParseFilters(data []byte, format Format) ([]Filter, error) {
	var ff FilterFile

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &ff); err != nil {
			return nil, fmt.Errorf("failed to parse filter YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &ff); err != nil {
			return nil, fmt.Errorf("failed to parse filter TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return ff.Compile()
}

// Compile turns the rules into filters, keeping their order.
func (ff FilterFile) Compile() ([]Filter, error) {
	filters := make([]Filter, 0, len(ff.Filters))

	for i, rule := range ff.Filters {
		f, err := NewFilter(rule.Action, rule.Message, rule.Category, rule.Module, rule.Line)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i+1, err)
		}

		filters = append(filters, f)
	}

	return filters, nil
}
