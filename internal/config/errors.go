package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every caller-contract violation.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports one field outside its declared range.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Validate checks every field and joins all violations.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, value interface{}, format string, args ...interface{}) {
		errs = append(errs, &ConfigurationError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)})
	}

	if !inRange(c.MoveRangeX, MinMoveRange, MaxMoveRange) {
		bad("move_range_x", c.MoveRangeX, "must be in [%g, %g]", MinMoveRange, MaxMoveRange)
	}
	if !inRange(c.MoveRangeY, MinMoveRange, MaxMoveRange) {
		bad("move_range_y", c.MoveRangeY, "must be in [%g, %g]", MinMoveRange, MaxMoveRange)
	}
	if !inRange(c.Zoom, MinZoom, MaxZoom) {
		bad("zoom", c.Zoom, "must be in [%g, %g]", MinZoom, MaxZoom)
	}
	if c.FrameCount < MinFrameCount || c.FrameCount > MaxFrameCount {
		bad("frame_num", c.FrameCount, "must be in [%d, %d]", MinFrameCount, MaxFrameCount)
	}

	// empty modes mean the defaults, as in ParseResizeMode and ParseTilingMode
	switch c.ResizeMode {
	case ResizeDisabled, "":
	case ResizeCustom, ResizeKeepRatio:
		if c.TargetWidth < MinTargetSize || c.TargetWidth > MaxTargetSize {
			bad("target_width", c.TargetWidth, "must be in [%d, %d]", MinTargetSize, MaxTargetSize)
		}
		// keep_ratio ignores target_height
		if c.ResizeMode == ResizeCustom && (c.TargetHeight < MinTargetSize || c.TargetHeight > MaxTargetSize) {
			bad("target_height", c.TargetHeight, "must be in [%d, %d]", MinTargetSize, MaxTargetSize)
		}
	default:
		bad("resize_mode", c.ResizeMode, "must be one of disabled, custom, keep_ratio")
	}

	switch c.Tiling {
	case "", TilingPlain, TilingMirrored, TilingAuto:
	default:
		bad("tiling", c.Tiling, "must be one of plain, mirrored, auto")
	}

	if c.CanvasWidth < 0 {
		bad("canvas_width", c.CanvasWidth, "must not be negative")
	}
	if c.CanvasHeight < 0 {
		bad("canvas_height", c.CanvasHeight, "must not be negative")
	}
	if c.Workers < 0 {
		bad("workers", c.Workers, "must not be negative")
	}

	return errors.Join(errs...)
}

// inRange is false for NaN.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
