package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bounds of the host parameter schema.
const (
	MinMoveRange  = -1.0
	MaxMoveRange  = 1.0
	MinZoom       = 0.0
	MaxZoom       = 0.5
	MinFrameCount = 2
	MaxFrameCount = 150
	MinTargetSize = 64
	MaxTargetSize = 2048
)

type ResizeMode string

const (
	ResizeDisabled  ResizeMode = "disabled"
	ResizeCustom    ResizeMode = "custom"
	ResizeKeepRatio ResizeMode = "keep_ratio"
)

func ParseResizeMode(s string) (ResizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "disabled":
		return ResizeDisabled, nil
	case "custom":
		return ResizeCustom, nil
	case "keep_ratio", "keepratio", "keep-ratio":
		return ResizeKeepRatio, nil
	}
	return "", &ConfigurationError{Field: "resize_mode", Value: s, Reason: "unknown resize mode"}
}

// TilingMode selects how the zoomed tile repeats across the canvas.
type TilingMode string

const (
	TilingPlain    TilingMode = "plain"
	TilingMirrored TilingMode = "mirrored"
	// TilingAuto picks mirrored when the source has a visible wraparound seam.
	TilingAuto TilingMode = "auto"
)

func ParseTilingMode(s string) (TilingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain", "repeat":
		return TilingPlain, nil
	case "mirrored", "mirror":
		return TilingMirrored, nil
	case "auto":
		return TilingAuto, nil
	}
	return "", &ConfigurationError{Field: "tiling", Value: s, Reason: "unknown tiling mode"}
}

// Config holds the motion settings plus the options of the command line tool.
type Config struct {
	MoveRangeX   float64    `yaml:"move_range_x"`
	MoveRangeY   float64    `yaml:"move_range_y"`
	Zoom         float64    `yaml:"zoom"`
	FrameCount   int        `yaml:"frame_num"`
	ResizeMode   ResizeMode `yaml:"resize_mode"`
	TargetWidth  int        `yaml:"target_width"`
	TargetHeight int        `yaml:"target_height"`
	CenterCrop   bool       `yaml:"center_crop"`

	Tiling       TilingMode `yaml:"tiling"`
	CanvasWidth  int        `yaml:"canvas_width,omitempty"`  // 0 = tile width
	CanvasHeight int        `yaml:"canvas_height,omitempty"` // 0 = tile height
	Workers      int        `yaml:"workers,omitempty"`       // 0 = CPU count
}

// Default returns the schema defaults.
func Default() *Config {
	return &Config{
		MoveRangeX:   0,
		MoveRangeY:   0,
		Zoom:         0,
		FrameCount:   10,
		ResizeMode:   ResizeDisabled,
		TargetWidth:  512,
		TargetHeight: 512,
		CenterCrop:   false,
		Tiling:       TilingPlain,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.ResizeMode, err = ParseResizeMode(string(cfg.ResizeMode)); err != nil {
		return nil, err
	}
	if cfg.Tiling, err = ParseTilingMode(string(cfg.Tiling)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) YAML() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("# marshal error: %v\n", err)
	}
	return string(data)
}
