package director

// FramePlan is the camera state of one output frame.
type FramePlan struct {
	Index   int     `yaml:"index"`
	XOffset int     `yaml:"x_offset"` // pixels, in [0, width)
	YOffset int     `yaml:"y_offset"` // pixels, in [0, height)
	Zoom    float64 `yaml:"zoom"`     // fractional crop-in, 0 = none
}

// Scenario is an exported frame plan together with the size it was made for
type Scenario struct {
	Version string      `yaml:"version"`
	Width   int         `yaml:"width"`
	Height  int         `yaml:"height"`
	Frames  []FramePlan `yaml:"frames"`
}

// NewScenario wraps a plan for export.
func NewScenario(width, height int, frames []FramePlan) *Scenario {
	return &Scenario{
		Version: "1.0",
		Width:   width,
		Height:  height,
		Frames:  frames,
	}
}
