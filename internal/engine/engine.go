package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/motionguider/internal/analyzer"
	"github.com/ivlev/motionguider/internal/config"
	"github.com/ivlev/motionguider/internal/director"
	"github.com/ivlev/motionguider/internal/effects"
	"github.com/ivlev/motionguider/internal/normalize"
	"github.com/ivlev/motionguider/internal/system"
	"github.com/ivlev/motionguider/internal/tensor"
)

// MotionGuider turns one image into an animated pan/zoom sequence:
// normalize, plan the camera path, composite every frame.
type MotionGuider struct {
	Config   *config.Config
	Detector analyzer.Detector
	Logger   logrus.FieldLogger

	// Effect overrides the compositor chosen from Config.Tiling.
	Effect effects.Effect
}

// Result is the output sequence together with what produced it.
type Result struct {
	Frames     *tensor.Batch // (frameCount, H, W, C)
	Plan       []director.FramePlan
	Normalized *tensor.Image
	Tiling     config.TilingMode
	Seams      *analyzer.SeamReport // set when tiling was auto
}

func NewMotionGuider(cfg *config.Config, logger logrus.FieldLogger) *MotionGuider {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	// the default variant always exists
	det, _ := analyzer.NewDetector("")
	return &MotionGuider{
		Config:   cfg,
		Detector: det,
		Logger:   logger,
	}
}

// GuideMotion runs the whole pipeline with a quiet logger and returns the frames.
func GuideMotion(ctx context.Context, img *tensor.Image, cfg *config.Config) (*tensor.Batch, error) {
	res, err := NewMotionGuider(cfg, nil).Run(ctx, img)
	if err != nil {
		return nil, err
	}
	return res.Frames, nil
}

// Run synthesizes the sequence. It is all-or-nothing: on error no frames are
// returned. The input image is never modified.
func (g *MotionGuider) Run(ctx context.Context, img *tensor.Image) (*Result, error) {
	startTime := time.Now()
	norm, err := g.prepare(img)
	if err != nil {
		return nil, err
	}

	cfg := g.Config
	plan := director.NewDirector(norm.Width, norm.Height).Plan(cfg.MoveRangeX, cfg.MoveRangeY, cfg.Zoom, cfg.FrameCount)
	return g.render(ctx, norm, plan, startTime)
}

// prepare validates the inputs and normalizes the source.
func (g *MotionGuider) prepare(img *tensor.Image) (*tensor.Image, error) {
	cfg := g.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if img == nil || img.Width <= 0 || img.Height <= 0 || img.Channels <= 0 {
		return nil, &config.ConfigurationError{Field: "image", Value: shapeOf(img), Reason: "must be a non-empty image"}
	}
	if len(img.Pix) != img.Width*img.Height*img.Channels {
		return nil, fmt.Errorf("image data length %d does not match shape %v", len(img.Pix), img.Shape())
	}

	norm := normalize.Normalize(img, cfg.ResizeMode, cfg.TargetWidth, cfg.TargetHeight, cfg.CenterCrop)
	g.Logger.WithFields(logrus.Fields{
		"width":         norm.Width,
		"height":        norm.Height,
		"source_width":  img.Width,
		"source_height": img.Height,
		"resize_mode":   cfg.ResizeMode,
		"center_crop":   cfg.CenterCrop,
	}).Debug("normalized source")
	return norm, nil
}

// render composites plan over norm onto the configured canvas.
func (g *MotionGuider) render(ctx context.Context, norm *tensor.Image, plan []director.FramePlan, startTime time.Time) (*Result, error) {
	cfg := g.Config
	log := g.Logger.WithFields(logrus.Fields{
		"width":  norm.Width,
		"height": norm.Height,
		"frames": len(plan),
	})

	res := &Result{Plan: plan, Normalized: norm}
	eff, err := g.resolveEffect(norm, res)
	if err != nil {
		return nil, err
	}
	res.Tiling = eff.Mode()

	canvasW, canvasH := norm.Width, norm.Height
	if cfg.CanvasWidth > 0 {
		canvasW = cfg.CanvasWidth
	}
	if cfg.CanvasHeight > 0 {
		canvasH = cfg.CanvasHeight
	}

	need := system.SequenceBytes(len(plan), canvasW, canvasH, norm.Channels)
	if err := system.CheckMemory(need); err != nil {
		log.WithError(err).Warn("output may not fit in memory")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}
	workers = max(1, min(workers, len(plan)))

	log.WithFields(logrus.Fields{
		"tiling":  res.Tiling,
		"workers": workers,
		"canvas":  fmt.Sprintf("%dx%d", canvasW, canvasH),
		"bytes":   system.FormatBytes(need),
	}).Info("compositing frames")

	frames, err := compositeAll(ctx, eff, norm, plan, canvasW, canvasH, workers)
	if err != nil {
		return nil, err
	}
	res.Frames = frames

	log.WithField("elapsed", time.Since(startTime).Round(time.Millisecond)).Info("sequence ready")
	return res, nil
}

func (g *MotionGuider) resolveEffect(norm *tensor.Image, res *Result) (effects.Effect, error) {
	if g.Effect != nil {
		return g.Effect, nil
	}

	mode := g.Config.Tiling
	if mode == config.TilingAuto {
		det := g.Detector
		if det == nil {
			det = analyzer.NewSeamDetector()
		}
		threshold := analyzer.DefaultSeamThreshold
		if sd, ok := det.(*analyzer.SeamDetector); ok {
			threshold = sd.Threshold
		}

		chosen, report, err := analyzer.ChooseTiling(det, norm, threshold)
		if err != nil {
			// too small to judge
			g.Logger.WithError(err).Warn("seam analysis failed, using plain tiling")
		} else {
			res.Seams = &report
			g.Logger.WithFields(logrus.Fields{
				"horizontal": report.Horizontal,
				"vertical":   report.Vertical,
				"tiling":     chosen,
			}).Debug("seam analysis")
		}
		mode = chosen
	}

	return effects.NewEffect(mode)
}

// compositeAll рендерит каждый кадр в собственный слот общего батча.
func compositeAll(ctx context.Context, eff effects.Effect, norm *tensor.Image, plan []director.FramePlan, canvasW, canvasH, workers int) (*tensor.Batch, error) {
	batch := tensor.NewBatch(len(plan), canvasW, canvasH, norm.Channels)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := range plan {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			eff.Composite(batch.Frame(i), norm, plan[i])
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// scheduling may have stopped early without any goroutine failing
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return batch, nil
}

func shapeOf(img *tensor.Image) interface{} {
	if img == nil {
		return nil
	}
	return img.Shape()
}
