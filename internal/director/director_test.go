package director

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRoundTripScenario(t *testing.T) {
	// 100x100 image, move_range_x=0.5, 10 frames, no zoom
	frames := NewDirector(100, 100).Plan(0.5, 0, 0, 10)
	require.Len(t, frames, 10)

	for i, f := range frames {
		assert.Equal(t, i, f.Index)
		assert.Equal(t, int(50.0/9.0*float64(i))%100, f.XOffset, "frame %d", i)
		assert.Equal(t, 0, f.YOffset)
		assert.Equal(t, 0.0, f.Zoom)
	}
	assert.Equal(t, 50, frames[9].XOffset)
}

func TestPlanNoMotion(t *testing.T) {
	for _, n := range []int{2, 3, 17, 150} {
		for _, f := range NewDirector(64, 48).Plan(0, 0, 0.3, n) {
			assert.Equal(t, 0, f.XOffset)
			assert.Equal(t, 0, f.YOffset)
		}
	}
}

func TestPlanFirstFrameAtOrigin(t *testing.T) {
	tests := []struct {
		name   string
		rx, ry float64
	}{
		{"positive", 0.7, 0.3},
		{"negative", -0.4, -1},
		{"mixed", 1, -0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewDirector(120, 80).Plan(tt.rx, tt.ry, 0.2, 12)[0]
			assert.Equal(t, 0, f.XOffset)
			assert.Equal(t, 0, f.YOffset)
			assert.Equal(t, 0.0, f.Zoom)
		})
	}
}

func TestPlanZoomRamp(t *testing.T) {
	frames := NewDirector(64, 64).Plan(0, 0, 0.35, 8)

	assert.Equal(t, 0.0, frames[0].Zoom)
	assert.Equal(t, 0.35, frames[7].Zoom)
	for i := 1; i < len(frames); i++ {
		assert.GreaterOrEqual(t, frames[i].Zoom, frames[i-1].Zoom)
	}
	assert.InDelta(t, 0.35*3/7, frames[3].Zoom, 1e-12)
}

func TestPlanNegativeRangeWalksBackwards(t *testing.T) {
	// pixel range -50 over 5 frames: raw offsets 0, -12, -25, -37, -50
	frames := NewDirector(100, 10).Plan(-0.5, 0, 0, 5)

	got := make([]int, len(frames))
	for i, f := range frames {
		got[i] = f.XOffset
	}
	assert.Equal(t, []int{0, 88, 75, 63, 50}, got)
}

func TestPlanOffsetsStayInsideTile(t *testing.T) {
	d := NewDirector(37, 23)
	for _, f := range d.Plan(-1, 1, 0.5, 150) {
		assert.GreaterOrEqual(t, f.XOffset, 0)
		assert.Less(t, f.XOffset, 37)
		assert.GreaterOrEqual(t, f.YOffset, 0)
		assert.Less(t, f.YOffset, 23)
	}
}

func TestPlanFullRangeWrapsToZero(t *testing.T) {
	// moving a full width ends exactly one period later
	frames := NewDirector(64, 64).Plan(1, 0, 0, 5)
	assert.Equal(t, 0, frames[4].XOffset)
}

func TestPlanTruncatesPixelRange(t *testing.T) {
	// 0.55 * 30 = 16.5 -> 16 pixels
	frames := NewDirector(30, 30).Plan(0.55, 0, 0, 2)
	assert.Equal(t, 16, frames[1].XOffset)
}

func TestPlanPanicsOnSingleFrame(t *testing.T) {
	assert.Panics(t, func() { NewDirector(10, 10).Plan(0.5, 0, 0, 1) })
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 0, wrap(0, 5))
	assert.Equal(t, 4, wrap(-1, 5))
	assert.Equal(t, 0, wrap(-10, 5))
	assert.Equal(t, 2, wrap(12, 5))
}

func TestScenarioWriteRead(t *testing.T) {
	d := NewDirector(80, 60)
	scenario := NewScenario(80, 60, d.Plan(0.5, -0.25, 0.2, 6))

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, WriteScenario(scenario, path))

	read, err := ReadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, scenario, read)
}

func TestReadScenarioRejectsOutOfRangeOffsets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	yml := "version: \"1.0\"\nwidth: 10\nheight: 10\nframes:\n  - index: 0\n    x_offset: 10\n    y_offset: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	_, err := ReadScenario(path)
	assert.Error(t, err)
}
