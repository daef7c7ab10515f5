// Package style renders jungle results for humans and machines.
//
// Styles use semantic names and adaptive colors defined in the embedded
// styles.yaml. Whether they are applied depends on the output format,
// which is detected from the terminal unless requested explicitly.
package style

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles
type Registry map[string]lipgloss.Style

var defaultRegistry Registry

func init() {
	r, err := LoadStyles(defaultStyles)
	if err != nil {
		panic(fmt.Sprintf("failed to load styles: %v", err))
	}
	defaultRegistry = r
}

// LoadStyles parses a styles YAML document
func LoadStyles(data []byte) (Registry, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(Registry, len(config.Styles))
	for name, def := range config.Styles {
		registry[name] = buildStyle(def, colors)
	}
	return registry, nil
}

// buildStyle constructs a lipgloss style from a style definition
func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}
	return style
}

// Get returns the named style, or an empty style if it is unknown
func (r Registry) Get(name string) lipgloss.Style {
	if style, ok := r[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// GetStyle returns a style from the default registry
func GetStyle(name string) lipgloss.Style {
	return defaultRegistry.Get(name)
}
