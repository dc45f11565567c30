package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
)

// Format identifies a layout encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// appDir is the directory name used under the XDG config home.
const appDir = "viewcomponent"

var (
	yamlLineRegex = regexp.MustCompile(`line (\d+)`)

	defaultNames = []string{"layout.yaml", "layout.yml", "layout.toml"}
)

// FormatFor picks the layout format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported layout extension %q (expected .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// DefaultPath returns the first existing layout file under the XDG config
// directories, or $XDG_CONFIG_HOME/viewcomponent/layout.yaml when none exists.
func DefaultPath() string {
	for _, name := range defaultNames {
		if path, err := xdg.SearchConfigFile(filepath.Join(appDir, name)); err == nil {
			return path
		}
	}
	return filepath.Join(xdg.ConfigHome, appDir, defaultNames[0])
}

// ParseLayout loads a layout file from disk, validates it, and returns the resulting model.
func ParseLayout(path string) (*Layout, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, vcerrors.NewParseError(path, 0, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, vcerrors.NewParseError(path, 0, err)
	}

	return Decode(path, data, format)
}

// Decode parses and validates layout data. path is used for error reporting only.
func Decode(path string, data []byte, format Format) (*Layout, error) {
	var layout Layout

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &layout); err != nil {
			return nil, vcerrors.NewParseError(path, extractLine(err), err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &layout); err != nil {
			return nil, vcerrors.NewParseError(path, tomlLine(err), err)
		}
	default:
		return nil, vcerrors.NewParseError(path, 0, fmt.Errorf("unknown layout format %q", format))
	}

	if err := ValidateLayout(&layout); err != nil {
		return nil, err
	}

	return &layout, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}

func tomlLine(err error) int {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, _ := decodeErr.Position()
		return row
	}
	return 0
}
