package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rook-computer/fbsplash/internal/assets"
	"github.com/rook-computer/fbsplash/internal/render"
)

// HexColor is a color written as "#rrggbb" (or "0xrrggbb") in YAML.
type HexColor render.Color

func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseHexColor(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = HexColor(parsed)
	return nil
}

func (c HexColor) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("#%06x", uint32(c)), nil
}

// ParseHexColor parses "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseHexColor(s string) (render.Color, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %v", s, err)
	}
	return render.Color(v), nil
}

// StyleFile is the YAML shape of a style file. Keys left out keep the
// value from the layer below.
type StyleFile struct {
	BorderColor     HexColor `yaml:"border_color"`
	BackgroundColor HexColor `yaml:"background_color"`
	FillColor       HexColor `yaml:"fill_color"`
	BorderWidth     int      `yaml:"border_width"`
	Margin          int      `yaml:"margin"`
	CornerRadius    int      `yaml:"corner_radius"`
	BottomMargin    int      `yaml:"bottom_margin"`
}

func (f StyleFile) apply(style *render.ProgressBarStyle) {
	style.BorderColor = render.Color(f.BorderColor)
	style.BackgroundColor = render.Color(f.BackgroundColor)
	style.FillColor = render.Color(f.FillColor)
	style.BorderWidth = f.BorderWidth
	style.Margin = f.Margin
	style.CornerRadius = f.CornerRadius
	style.BottomMargin = f.BottomMargin
}

// LoadStyle returns the built-in style overlaid with the YAML file at path.
// An empty path returns the built-in style.
func LoadStyle(path string) (render.ProgressBarStyle, error) {
	var file StyleFile
	if err := decodeStyle(bytes.NewReader(assets.StyleYAML), &file); err != nil {
		return render.ProgressBarStyle{}, fmt.Errorf("built-in style: %w", err)
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return render.ProgressBarStyle{}, fmt.Errorf("%w: style: %v", ErrUsage, err)
		}
		defer f.Close()
		if err := decodeStyle(f, &file); err != nil {
			return render.ProgressBarStyle{}, fmt.Errorf("%w: style %s: %v", ErrUsage, path, err)
		}
	}

	var style render.ProgressBarStyle
	file.apply(&style)
	return style, nil
}

func decodeStyle(r io.Reader, into *StyleFile) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(into); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
