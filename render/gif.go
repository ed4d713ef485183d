package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/tree"
	"github.com/ericpauley/go-quantize/quantize"
)

// DefaultFrameDelay is the time each frame of a decomposition GIF is shown.
const DefaultFrameDelay = 500 * time.Millisecond

// Frames renders the tree once per depth, from the root alone (depth 0) down
// to its deepest leaves. Frame i is RenderDepth(root, i).
func Frames(root *tree.Node) ([]*image.RGBA, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil tree", errs.ErrMalformedInput)
	}

	maxDepth := root.Stats().MaxDepth
	frames := make([]*image.RGBA, 0, maxDepth+1)
	for depth := 0; depth <= maxDepth; depth++ {
		img, err := RenderDepth(root, depth)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}

	return frames, nil
}

// EncodeGIF writes frames as a looping animated GIF. Each frame is reduced
// to its own median-cut palette of at most 256 colors.
func EncodeGIF(w io.Writer, frames []*image.RGBA, delay time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("%w: no frames", errs.ErrMalformedInput)
	}
	if delay < 0 {
		return fmt.Errorf("invalid frame delay %s", delay)
	}

	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	centis := int(delay / (10 * time.Millisecond))
	q := quantize.MedianCutQuantizer{}
	for _, frame := range frames {
		bounds := frame.Bounds()
		palette := q.Quantize(make(color.Palette, 0, 256), frame)
		paletted := image.NewPaletted(bounds, palette)
		draw.Draw(paletted, bounds, frame, bounds.Min, draw.Src)

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, centis)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("%w: write gif: %w", errs.ErrIO, err)
	}

	return nil
}

// WriteGIF renders the progressive decomposition of the tree as an animated
// GIF, one frame per depth.
func WriteGIF(w io.Writer, root *tree.Node, delay time.Duration) error {
	frames, err := Frames(root)
	if err != nil {
		return err
	}

	return EncodeGIF(w, frames, delay)
}
