package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arloliu/quadpack"
	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/render"
	"github.com/arloliu/quadpack/tree"
	"github.com/lmittmann/ppm"
	"github.com/spf13/cobra"
	"github.com/xfmoulet/qoi"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		depth     int
		delay     time.Duration
		bigEndian bool
	)

	cmd := &cobra.Command{
		Use:   "render <file> <output.ppm|.png|.qoi|.gif>",
		Short: "Paint an encoded quadtree back into an image",
		Long: `Paint an encoded quadtree back into an image.

A .gif output is an animation of the decomposition with one frame per
depth, from the root alone down to --depth (all levels by default).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("big-endian") {
				a.cfg.BigEndian = bigEndian
			}

			return a.render(args[0], args[1], depth, delay)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", -1, "stop painting below this depth, -1 for all levels")
	cmd.Flags().DurationVar(&delay, "delay", render.DefaultFrameDelay, "time each GIF frame is shown")
	cmd.Flags().BoolVar(&bigEndian, "big-endian", false, "read raw input as big-endian")

	return cmd
}

func (a *app) render(input, output string, depth int, delay time.Duration) error {
	animated := strings.EqualFold(filepath.Ext(output), ".gif")

	var encode encodeFunc
	if !animated {
		var err error
		if encode, err = imageEncoder(output); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", errs.ErrIO, input, err)
	}

	start := time.Now()
	root, err := quadpack.Decompress(data, quadpack.WithDecoderOptions(a.cfg.DecoderOptions()...))
	if err != nil {
		return err
	}
	a.log.Debug().Dur("elapsed", time.Since(start)).Msg("tree decoded")

	if animated {
		return a.renderGIF(root, output, depth, delay)
	}

	start = time.Now()
	img, err := render.RenderDepth(root, depth)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", output, err)
	}
	if err := writeFileAtomic(output, buf.Bytes()); err != nil {
		return err
	}

	a.log.Info().Str("output", output).Int("side", img.Bounds().Dx()).
		Int("depth", depth).Dur("elapsed", time.Since(start)).Msg("rendered")

	return nil
}

func (a *app) renderGIF(root *tree.Node, output string, depth int, delay time.Duration) error {
	start := time.Now()
	frames, err := render.Frames(root)
	if err != nil {
		return err
	}
	if depth >= 0 && depth+1 < len(frames) {
		frames = frames[:depth+1]
	}

	var buf bytes.Buffer
	if err := render.EncodeGIF(&buf, frames, delay); err != nil {
		return err
	}
	if err := writeFileAtomic(output, buf.Bytes()); err != nil {
		return err
	}

	a.log.Info().Str("output", output).Int("frames", len(frames)).
		Dur("delay", delay).Dur("elapsed", time.Since(start)).Msg("rendered animation")

	return nil
}

type encodeFunc func(w io.Writer, img image.Image) error

// imageEncoder picks the output format from the file extension.
func imageEncoder(path string) (encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return ppm.Encode, nil
	case ".png":
		return png.Encode, nil
	case ".qoi":
		return qoi.Encode, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: use .ppm, .png, .qoi or .gif", filepath.Ext(path))
	}
}
