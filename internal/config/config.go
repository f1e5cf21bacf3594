// Package config loads docmark settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level docmark configuration.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Rect   RectConfig   `yaml:"rect"`
	Page   PageConfig   `yaml:"page"`
	View   ViewConfig   `yaml:"view"`

	// Logger receives debug records. It is never read from the file.
	Logger *slog.Logger `yaml:"-"`
}

// SearchConfig holds the initial search parameters.
type SearchConfig struct {
	Mode           string  `yaml:"mode"` // exact | distance | scored
	MaxDistance    int     `yaml:"max_distance"`
	MaxScore       float64 `yaml:"max_score"`
	CaseSensitive  bool    `yaml:"case_sensitive"`
	WholeWord      bool    `yaml:"whole_word"`
	HighlightColor string  `yaml:"highlight_color"`
}

// RectConfig is the overlay rectangle a new document starts with.
type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

// PageConfig is the natural page size used until a document reports its own.
type PageConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ViewConfig controls the terminal viewer.
type ViewConfig struct {
	TabWidth     int `yaml:"tab_width"`
	SearchWorker int `yaml:"search_workers"`
	// CellWidth and CellHeight are the points covered by one terminal cell
	// when a paginated page is drawn.
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Mode:           "exact",
			MaxDistance:    0,
			MaxScore:       0.4,
			CaseSensitive:  false,
			WholeWord:      true,
			HighlightColor: "#FFFF00",
		},
		Rect: RectConfig{X: 0, Y: 0, Width: 100, Height: 100, Scale: 1.0},
		Page: PageConfig{Width: 595, Height: 842},
		View: ViewConfig{TabWidth: 4, SearchWorker: 4, CellWidth: 6, CellHeight: 12},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/docmark/config.yaml or its platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "docmark", "config.yaml"), nil
}

// LoadFile reads a YAML configuration file. Keys missing from the file keep
// their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Load reads path, or the default location when path is empty. A missing
// file at the default location is not an error.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	def, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := LoadFile(def)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	def := Default()

	if c.Search.Mode == "" {
		c.Search.Mode = def.Search.Mode
	}
	if c.Search.MaxDistance < 0 {
		c.Search.MaxDistance = 0
	}
	c.Search.MaxScore = clampUnit(c.Search.MaxScore, def.Search.MaxScore)
	if c.Search.HighlightColor == "" {
		c.Search.HighlightColor = def.Search.HighlightColor
	}

	c.Rect.X = nonNegative(c.Rect.X)
	c.Rect.Y = nonNegative(c.Rect.Y)
	c.Rect.Width = nonNegative(c.Rect.Width)
	c.Rect.Height = nonNegative(c.Rect.Height)
	if !(c.Rect.Scale > 0) {
		c.Rect.Scale = def.Rect.Scale
	}

	if !(c.Page.Width > 0) {
		c.Page.Width = def.Page.Width
	}
	if !(c.Page.Height > 0) {
		c.Page.Height = def.Page.Height
	}

	if c.View.TabWidth <= 0 {
		c.View.TabWidth = def.View.TabWidth
	}
	if c.View.SearchWorker <= 0 {
		c.View.SearchWorker = def.View.SearchWorker
	}
	if !(c.View.CellWidth > 0) {
		c.View.CellWidth = def.View.CellWidth
	}
	if !(c.View.CellHeight > 0) {
		c.View.CellHeight = def.View.CellHeight
	}
}

func clampUnit(v, fallback float64) float64 {
	switch {
	case math.IsNaN(v):
		return fallback
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
