package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/arloliu/quadpack"
	"github.com/arloliu/quadpack/blob"
	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/flat"
	"github.com/arloliu/quadpack/raster"
	"github.com/arloliu/quadpack/tree"
	"github.com/spf13/cobra"
)

// thresholdAuto asks compress to search for a threshold meeting --target-nodes.
const thresholdAuto = "auto"

type compressFlags struct {
	metric      string
	minSize     int
	maxDepth    int
	compression string
	bigEndian   bool
	targetNodes int
}

func newCompressCmd(a *app) *cobra.Command {
	var f compressFlags

	cmd := &cobra.Command{
		Use:   "compress <input> <threshold|auto> <output>",
		Short: "Encode an image as a flattened quadtree",
		Long: `Encode the largest top-left square of a PNG, PPM or QOI image.

A quadrant splits while its score is strictly greater than the threshold.
With "auto" the smallest threshold whose tree has at most --target-nodes
nodes is used; the budget may also come from the config file or
QUADPACK_TARGET_NODES.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.apply(cmd, a); err != nil {
				return err
			}

			return a.compress(cmd.Context(), args[0], args[1], args[2], a.cfg.TargetNodes)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.metric, "metric", "", "split metric (variance, mad, maxdiff, entropy, ssim)")
	fl.IntVar(&f.minSize, "min-size", 0, "smallest child side a split may produce")
	fl.IntVar(&f.maxDepth, "max-depth", 0, "depth limit, 0 for unlimited")
	fl.StringVar(&f.compression, "compression", "", "container compression (none, zstd, s2, lz4)")
	fl.BoolVar(&f.bigEndian, "big-endian", false, "write big-endian records")
	fl.IntVar(&f.targetNodes, "target-nodes", 0, "node budget used with threshold auto")

	return cmd
}

// apply overlays the flags the user set on the loaded config.
func (f *compressFlags) apply(cmd *cobra.Command, a *app) error {
	fl := cmd.Flags()
	if fl.Changed("metric") {
		a.cfg.Metric = f.metric
	}
	if fl.Changed("min-size") {
		a.cfg.MinSize = f.minSize
	}
	if fl.Changed("max-depth") {
		a.cfg.MaxDepth = f.maxDepth
	}
	if fl.Changed("compression") {
		a.cfg.Compression = f.compression
	}
	if fl.Changed("big-endian") {
		a.cfg.BigEndian = f.bigEndian
	}
	if fl.Changed("target-nodes") {
		a.cfg.TargetNodes = f.targetNodes
	}

	return a.cfg.Validate()
}

func parseThreshold(arg string, targetNodes int) (threshold int, search bool, err error) {
	if arg == thresholdAuto {
		if targetNodes < 1 {
			return 0, false, fmt.Errorf("%w: threshold auto needs --target-nodes", errs.ErrInvalidThreshold)
		}

		return 0, true, nil
	}

	threshold, err = strconv.Atoi(arg)
	if err != nil || threshold < 0 {
		return 0, false, fmt.Errorf("%w: %q is not a non-negative integer", errs.ErrInvalidThreshold, arg)
	}

	return threshold, false, nil
}

func (a *app) compress(ctx context.Context, input, thresholdArg, output string, targetNodes int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	threshold, search, err := parseThreshold(thresholdArg, targetNodes)
	if err != nil {
		return err
	}

	builderOpts, err := a.cfg.BuilderOptions()
	if err != nil {
		return err
	}
	encoderOpts, err := a.cfg.EncoderOptions()
	if err != nil {
		return err
	}

	start := time.Now()
	r, format, err := raster.DecodeFile(input)
	if err != nil {
		return err
	}
	a.log.Debug().Str("input", input).Str("format", format).
		Int("rows", r.Rows()).Int("cols", r.Cols()).
		Dur("elapsed", time.Since(start)).Msg("image decoded")
	if excluded := r.Excluded(); excluded > 0 {
		a.log.Warn().Int("side", r.Square()).Int("excluded_pixels", excluded).
			Msg("image is not square, only the top-left square is encoded")
	}

	if search {
		start = time.Now()
		res, err := quadpack.SearchThreshold(ctx, r, targetNodes, quadpack.WithBuilderOptions(builderOpts...))
		if err != nil {
			return err
		}
		threshold = res.Threshold
		a.log.Info().Int("threshold", res.Threshold).Int("nodes", res.Nodes).
			Int("target_nodes", targetNodes).Int("builds", res.Builds).
			Dur("elapsed", time.Since(start)).Msg("threshold selected")
	}

	start = time.Now()
	root, err := tree.BuildRaster(r, threshold, builderOpts...)
	if err != nil {
		return err
	}
	stats := root.Stats()
	a.log.Debug().Dur("elapsed", time.Since(start)).Msg("tree built")

	start = time.Now()
	arr := flat.Flatten(root)
	a.log.Debug().Dur("elapsed", time.Since(start)).Msg("tree flattened")

	enc, err := blob.NewEncoder(encoderOpts...)
	if err != nil {
		return err
	}

	start = time.Now()
	data, err := enc.Encode(arr)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(output, data); err != nil {
		return err
	}

	a.log.Info().
		Str("output", output).
		Int("threshold", threshold).
		Int("nodes", stats.Nodes).
		Int("leaves", stats.Leaves).
		Int("max_depth", stats.MaxDepth).
		Int("bytes", len(data)).
		Str("compression", enc.Config().Compression().String()).
		Dur("elapsed", time.Since(start)).
		Msg("compressed")

	return nil
}
