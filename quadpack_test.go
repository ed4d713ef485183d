package quadpack

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/arloliu/quadpack/blob"
	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/raster"
	"github.com/arloliu/quadpack/render"
	"github.com/arloliu/quadpack/section"
	"github.com/arloliu/quadpack/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func checkerboard(t *testing.T, side int) *raster.Raster {
	t.Helper()

	r, err := raster.New(side, side)
	require.NoError(t, err)
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			if (row+col)%2 == 1 {
				r.Set(row, col, raster.Color{R: 255, G: 255, B: 255})
			}
		}
	}

	return r
}

// blocks returns a side x side raster made of uniform 4x4 tiles with
// alternating colors, so the tree size changes with the threshold.
func blocks(t *testing.T, side int) *raster.Raster {
	t.Helper()

	r, err := raster.New(side, side)
	require.NoError(t, err)
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			v := uint8(((row/4)*7 + (col/4)*13) % 256)
			r.Set(row, col, raster.Color{R: v, G: v / 2, B: 255 - v})
		}
	}

	return r
}

func TestCompress_Checkerboard(t *testing.T) {
	data, err := Compress(checkerboard(t, 4), 0)
	require.NoError(t, err)
	require.Len(t, data, section.HeaderSize+21*section.RecordSize)

	stats, err := Inspect(data)
	require.NoError(t, err)
	require.Equal(t, 21, stats.Nodes)
	require.Equal(t, 16, stats.Leaves)
	require.Equal(t, 2, stats.MaxDepth)
	require.Equal(t, 4, stats.Side)
	require.Equal(t, format.CompressionNone, stats.Compression)
	require.Equal(t, len(data), stats.EncodedSize)
	require.Equal(t, len(data), stats.RawSize)
	require.InDelta(t, float64(len(data))/48, stats.Ratio(), 1e-9)
}

func TestCompress_UniformImage(t *testing.T) {
	r, err := raster.Fill(16, 16, raster.Color{R: 10, G: 20, B: 30})
	require.NoError(t, err)

	data, err := Compress(r, 5)
	require.NoError(t, err)

	root, err := Decompress(data)
	require.NoError(t, err)
	require.True(t, root.IsLeaf())
	require.Equal(t, raster.Color{R: 10, G: 20, B: 30}, root.Color)
	require.Equal(t, uint32(256), root.Area)
}

func TestRoundTrip(t *testing.T) {
	r := blocks(t, 32)
	want, err := tree.BuildRaster(r, 50)
	require.NoError(t, err)

	tests := map[string][]Option{
		"defaults":   nil,
		"big-endian": {WithEncoderOptions(blob.WithBigEndian()), WithDecoderOptions(blob.WithDecoderBigEndian())},
		"zstd":       {WithEncoderOptions(blob.WithCompression(format.CompressionZstd))},
		"lz4":        {WithEncoderOptions(blob.WithCompression(format.CompressionLZ4), blob.WithBigEndian())},
	}

	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := Compress(r, 50, opts...)
			require.NoError(t, err)

			got, err := Decompress(data, opts...)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(want, got))
		})
	}
}

func TestCompressImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 60), B: 7, A: 0xff})
		}
	}

	data, err := CompressImage(img, 0)
	require.NoError(t, err)

	root, err := Decompress(data)
	require.NoError(t, err)
	require.Equal(t, uint32(16), root.Area)

	out, err := render.Render(root)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, img.NRGBAAt(x, y).R, out.RGBAAt(x, y).R)
			require.Equal(t, img.NRGBAAt(x, y).G, out.RGBAAt(x, y).G)
		}
	}

	_, err = CompressImage(nil, 0)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestCompress_Errors(t *testing.T) {
	_, err := Compress(checkerboard(t, 4), -1)
	require.ErrorIs(t, err, errs.ErrInvalidThreshold)

	_, err = Compress(nil, 0)
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	_, err = Compress(checkerboard(t, 4), 0, WithBuilderOptions(tree.WithMinSize(0)))
	require.Error(t, err)

	_, err = Compress(checkerboard(t, 4), 0, WithEncoderOptions(blob.WithCompression(0)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = Decompress([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	_, err = Inspect(nil)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestSearchThreshold(t *testing.T) {
	r := blocks(t, 32)
	ctx := context.Background()

	full, err := tree.BuildRaster(r, 0)
	require.NoError(t, err)
	fullNodes := full.Count()

	t.Run("target at full size needs no pruning", func(t *testing.T) {
		res, err := SearchThreshold(ctx, r, fullNodes)
		require.NoError(t, err)
		require.Equal(t, 0, res.Threshold)
		require.Equal(t, fullNodes, res.Nodes)
	})

	t.Run("target of one node", func(t *testing.T) {
		res, err := SearchThreshold(ctx, r, 1)
		require.NoError(t, err)
		require.Equal(t, 1, res.Nodes)

		below, err := tree.BuildRaster(r, res.Threshold-1)
		require.NoError(t, err)
		require.Greater(t, below.Count(), 1)
	})

	t.Run("result is minimal", func(t *testing.T) {
		target := fullNodes / 3
		res, err := SearchThreshold(ctx, r, target)
		require.NoError(t, err)
		require.LessOrEqual(t, res.Nodes, target)
		require.Positive(t, res.Builds)

		root, err := tree.BuildRaster(r, res.Threshold)
		require.NoError(t, err)
		require.Equal(t, res.Nodes, root.Count())

		if res.Threshold > 0 {
			below, err := tree.BuildRaster(r, res.Threshold-1)
			require.NoError(t, err)
			require.Greater(t, below.Count(), target)
		}
	})

	t.Run("builder options apply", func(t *testing.T) {
		res, err := SearchThreshold(ctx, r, fullNodes, WithBuilderOptions(tree.WithMaxDepth(1)))
		require.NoError(t, err)
		require.Equal(t, 0, res.Threshold)
		require.Equal(t, 5, res.Nodes)
	})

	t.Run("invalid target", func(t *testing.T) {
		_, err := SearchThreshold(ctx, r, 0)
		require.ErrorIs(t, err, errs.ErrInvalidThreshold)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := SearchThreshold(cctx, r, 10)
		require.ErrorIs(t, err, context.Canceled)
	})
}
