package encoding

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/packdesc/internal/domain/entities"
	"github.com/ochairo/packdesc/internal/domain/interfaces/gateways"
)

// Supported output formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// YAMLEncoder writes descriptors as YAML
type YAMLEncoder struct{}

// Format returns the format name
func (YAMLEncoder) Format() string { return FormatYAML }

// Encode writes d to w
func (YAMLEncoder) Encode(w io.Writer, d *entities.Descriptor, opts gateways.EncodeOptions) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDescriptorDocument(d, opts)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// JSONEncoder writes descriptors as indented JSON
type JSONEncoder struct{}

// Format returns the format name
func (JSONEncoder) Format() string { return FormatJSON }

// Encode writes d to w
func (JSONEncoder) Encode(w io.Writer, d *entities.Descriptor, opts gateways.EncodeOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDescriptorDocument(d, opts)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// TOMLEncoder writes descriptors as TOML
type TOMLEncoder struct{}

// Format returns the format name
func (TOMLEncoder) Format() string { return FormatTOML }

// Encode writes d to w
func (TOMLEncoder) Encode(w io.Writer, d *entities.Descriptor, opts gateways.EncodeOptions) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(newDescriptorDocument(d, opts)); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	return nil
}

var encoders = map[string]gateways.DescriptorEncoder{
	FormatYAML: YAMLEncoder{},
	"yml":      YAMLEncoder{},
	FormatJSON: JSONEncoder{},
	FormatTOML: TOMLEncoder{},
}

// ForFormat returns the encoder registered for a format name
func ForFormat(format string) (gateways.DescriptorEncoder, error) {
	enc, ok := encoders[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	return enc, nil
}

// Formats lists the canonical format names
func Formats() []string {
	return []string{FormatJSON, FormatTOML, FormatYAML}
}
