package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ivlev/motionguider/internal/config"
	"github.com/ivlev/motionguider/internal/director"
	"github.com/ivlev/motionguider/internal/engine"
	"github.com/ivlev/motionguider/internal/source"
	"github.com/ivlev/motionguider/internal/system"
	"github.com/ivlev/motionguider/internal/video"
)

var BuildVersion = "dev"

type options struct {
	configPath string
	outDir     string
	format     string
	planOut    string
	planIn     string
	debug      bool
	dpi        int
	qrSize     int

	moveX, moveY float64
	zoom         float64
	frames       int
	resize       string
	width        int
	height       int
	crop         bool
	tiling       string
	canvasW      int
	canvasH      int
	workers      int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	def := config.Default()

	root := &cobra.Command{
		Use:     "motionguider [INPUT]",
		Short:   "Synthesize a pan/zoom frame sequence over a wraparound-tiled image",
		Long:    "INPUT is an image file, file.pdf#page, or qr:<text>. Without INPUT the newest image in input/ is used.",
		Version: BuildVersion,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := initLogger(opts.debug)
			cfg, err := opts.resolveConfig(cmd)
			if err != nil {
				return err
			}
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return run(cmd.Context(), logger, cfg, opts, input)
		},
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML motion config (flags override it)")
	f.StringVarP(&opts.outDir, "out", "o", "", "output directory (default output/<input>_<timestamp>)")
	f.StringVar(&opts.format, "format", "png", "frame format: png, tiff, hdr")
	f.StringVar(&opts.planOut, "plan-out", "", "write the frame plan as YAML (a directory gets a timestamped file)")
	f.StringVar(&opts.planIn, "plan-in", "", "replay a saved plan instead of planning (a directory uses its newest plan)")
	f.BoolVar(&opts.debug, "debug", false, "verbose text logging")
	f.IntVar(&opts.dpi, "dpi", source.DefaultOptions().DPI, "PDF rasterisation DPI")
	f.IntVar(&opts.qrSize, "qr-size", source.DefaultOptions().QRSize, "QR pattern size in pixels")

	f.Float64Var(&opts.moveX, "move-x", def.MoveRangeX, "horizontal pan as a fraction of width, -1..1")
	f.Float64Var(&opts.moveY, "move-y", def.MoveRangeY, "vertical pan as a fraction of height, -1..1")
	f.Float64Var(&opts.zoom, "zoom", def.Zoom, "crop-in at the last frame, 0..0.5")
	f.IntVarP(&opts.frames, "frames", "n", def.FrameCount, "number of frames, 2..150")
	f.StringVar(&opts.resize, "resize", string(def.ResizeMode), "resize mode: disabled, custom, keep_ratio")
	f.IntVar(&opts.width, "width", def.TargetWidth, "target width, 64..2048")
	f.IntVar(&opts.height, "height", def.TargetHeight, "target height, 64..2048 (custom only)")
	f.BoolVar(&opts.crop, "center-crop", def.CenterCrop, "crop to a centered square after resizing")
	f.StringVar(&opts.tiling, "tiling", string(def.Tiling), "tiling: plain, mirrored, auto")
	f.IntVar(&opts.canvasW, "canvas-width", 0, "canvas width (0 = tile width)")
	f.IntVar(&opts.canvasH, "canvas-height", 0, "canvas height (0 = tile height)")
	f.IntVarP(&opts.workers, "workers", "j", 0, "parallel frames (0 = CPU count)")

	root.AddCommand(newConfigCmd(opts), newPlanCmd())
	return root
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective motion config as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolveConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.YAML())
			return cfg.Validate()
		},
	}
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [FILE|DIR]",
		Short: "Print a saved frame plan (the newest plan_*.yaml when given a directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			path, err := resolvePlanPath(path)
			if err != nil {
				return err
			}
			sc, err := director.ReadScenario(path)
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), path, sc)
			return nil
		},
	}
}

// resolvePlanPath maps a directory to its newest plan file.
func resolvePlanPath(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return director.FindLatestPlan(path)
	}
	return path, nil
}

func loadPlan(path string) (*director.Scenario, error) {
	path, err := resolvePlanPath(path)
	if err != nil {
		return nil, err
	}
	return director.ReadScenario(path)
}

func printPlan(out io.Writer, path string, sc *director.Scenario) {
	fmt.Fprintf(out, "%s: %dx%d, %d frames\n", path, sc.Width, sc.Height, len(sc.Frames))
	for _, f := range sc.Frames {
		fmt.Fprintf(out, "%4d  x=%-5d y=%-5d zoom=%.4f\n", f.Index, f.XOffset, f.YOffset, f.Zoom)
	}
}

func initLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

// resolveConfig загружает --config и применяет поверх все явно заданные флаги.
func (o *options) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) || o.configPath == "" {
			apply()
		}
	}
	var err error
	set("move-x", func() { cfg.MoveRangeX = o.moveX })
	set("move-y", func() { cfg.MoveRangeY = o.moveY })
	set("zoom", func() { cfg.Zoom = o.zoom })
	set("frames", func() { cfg.FrameCount = o.frames })
	set("width", func() { cfg.TargetWidth = o.width })
	set("height", func() { cfg.TargetHeight = o.height })
	set("center-crop", func() { cfg.CenterCrop = o.crop })
	set("canvas-width", func() { cfg.CanvasWidth = o.canvasW })
	set("canvas-height", func() { cfg.CanvasHeight = o.canvasH })
	set("workers", func() { cfg.Workers = o.workers })
	set("resize", func() { cfg.ResizeMode, err = config.ParseResizeMode(o.resize) })
	if err != nil {
		return nil, err
	}
	set("tiling", func() { cfg.Tiling, err = config.ParseTilingMode(o.tiling) })
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, logger *logrus.Logger, cfg *config.Config, opts *options, input string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := video.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	if input == "" {
		latest, err := system.FindLatestImage("input")
		if err != nil {
			return fmt.Errorf("no INPUT given and none found: %w", err)
		}
		input = latest
		logger.WithField("input", input).Info("picked latest image")
	}

	src, err := source.Open(input, source.Options{DPI: opts.dpi, QRSize: opts.qrSize})
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()
	if pdf, ok := src.(*source.FitzPDFSource); ok {
		logger.WithFields(logrus.Fields{"input": input, "pages": pdf.PageCount()}).Debug("opened pdf")
	}

	img, err := src.Load()
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}

	guider := engine.NewMotionGuider(cfg, logger)
	var res *engine.Result
	if opts.planIn != "" {
		sc, err := loadPlan(opts.planIn)
		if err != nil {
			return err
		}
		res, err = guider.Replay(ctx, img, sc)
		if err != nil {
			return err
		}
	} else {
		res, err = guider.Run(ctx, img)
		if err != nil {
			return err
		}
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = defaultOutDir(input)
	}
	paths, err := video.NewFileSequenceWriter(format).WriteSequence(ctx, res.Frames, outDir)
	if err != nil {
		return fmt.Errorf("write frames: %w", err)
	}

	if opts.planOut != "" {
		planPath := opts.planOut
		if info, err := os.Stat(planPath); err == nil && info.IsDir() {
			planPath = director.GeneratePlanPath(planPath)
		}
		sc := director.NewScenario(res.Normalized.Width, res.Normalized.Height, res.Plan)
		if err := director.WriteScenario(sc, planPath); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		logger.WithField("plan", planPath).Debug("plan written")
	}

	logger.WithFields(logrus.Fields{
		"frames": len(paths),
		"dir":    outDir,
		"tiling": res.Tiling,
	}).Info("done")
	return nil
}

func defaultOutDir(input string) string {
	name := input
	if text, ok := strings.CutPrefix(input, "qr:"); ok {
		name = "qr_" + text
	}
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '#', ':', '/', '\\':
			return '_'
		}
		return r
	}, base)
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("output", fmt.Sprintf("%s_%s", base, timestamp))
}
