package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// TemplateFlags selects the template text, from a file or inline.
type TemplateFlags struct {
	File string
	Text string
}

func (f *TemplateFlags) Set(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.File, "template", "t", "", "Template file (- for stdin)")
	cmd.Flags().StringVar(&f.Text, "template-text", "", "Template text")
}

func (f *TemplateFlags) Read() (string, error) {
	switch {
	case f.File != "" && f.Text != "":
		return "", fmt.Errorf("expected only one of --template and --template-text")
	case f.Text != "":
		return f.Text, nil
	case f.File != "":
		data, err := readFile(f.File)
		if err != nil {
			return "", fmt.Errorf("reading template: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("expected --template or --template-text")
}

// DataFlags selects the note fields a template renders against.
type DataFlags struct {
	File   string
	Fields []string
}

func (f *DataFlags) Set(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.File, "data", "d", "", "Data file: YAML, JSON (.json) or TOML (.toml); - for YAML on stdin")
	cmd.Flags().StringArrayVar(&f.Fields, "field", nil, "Set field (format: name=value) (can be specified multiple times)")
}

// Load decodes the data file, if any, and applies --field values on top.
func (f *DataFlags) Load() (map[string]interface{}, error) {
	data := map[string]interface{}{}

	if f.File != "" {
		bs, err := readFile(f.File)
		if err != nil {
			return nil, fmt.Errorf("reading data: %w", err)
		}

		switch strings.ToLower(filepath.Ext(f.File)) {
		case ".toml":
			if _, err := toml.Decode(string(bs), &data); err != nil {
				return nil, fmt.Errorf("decoding TOML data %s: %w", f.File, err)
			}
		default:
			// YAML is a superset of JSON
			if err := yaml.Unmarshal(bs, &data); err != nil {
				return nil, fmt.Errorf("decoding data %s: %w", f.File, err)
			}
			if data == nil {
				data = map[string]interface{}{}
			}
		}
	}

	for _, kv := range f.Fields {
		pieces := strings.SplitN(kv, "=", 2)
		if len(pieces) != 2 || pieces[0] == "" {
			return nil, fmt.Errorf("expected field '%s' to be in format 'name=value'", kv)
		}
		data[pieces[0]] = pieces[1]
	}

	return data, nil
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
