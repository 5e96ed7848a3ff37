package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ivlev/motionguider/internal/director"
	"github.com/ivlev/motionguider/internal/tensor"
)

// Replay composites a saved plan instead of planning a new one. The plan
// must have been made for the size img normalizes to under the current
// config; motion fields of the config are ignored.
func (g *MotionGuider) Replay(ctx context.Context, img *tensor.Image, sc *director.Scenario) (*Result, error) {
	startTime := time.Now()
	if sc == nil || len(sc.Frames) == 0 {
		return nil, fmt.Errorf("replay: empty plan")
	}

	norm, err := g.prepare(img)
	if err != nil {
		return nil, err
	}
	if sc.Width != norm.Width || sc.Height != norm.Height {
		return nil, fmt.Errorf("replay: plan is for %dx%d, source normalizes to %dx%d",
			sc.Width, sc.Height, norm.Width, norm.Height)
	}

	plan := make([]director.FramePlan, len(sc.Frames))
	for i, f := range sc.Frames {
		if f.XOffset < 0 || f.XOffset >= norm.Width || f.YOffset < 0 || f.YOffset >= norm.Height {
			return nil, fmt.Errorf("replay: frame %d offset (%d,%d) outside %dx%d", f.Index, f.XOffset, f.YOffset, norm.Width, norm.Height)
		}
		if !(f.Zoom >= 0 && f.Zoom < 1) {
			return nil, fmt.Errorf("replay: frame %d zoom %v outside [0,1)", f.Index, f.Zoom)
		}
		f.Index = i
		plan[i] = f
	}

	return g.render(ctx, norm, plan, startTime)
}
