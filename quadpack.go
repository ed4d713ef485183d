// Package quadpack compresses RGB images into a quadtree and serializes the
// tree into a compact, index-addressed binary array.
//
// Near-uniform regions of the image collapse into a single averaged-color
// leaf while detailed regions split into four quadrants. The tree is
// flattened in pre-order so that every node is a fixed-size record whose
// children are referenced by index.
//
// # Basic Usage
//
//	r, _, err := raster.DecodeFile("photo.ppm")
//	if err != nil {
//		return err
//	}
//	data, err := quadpack.Compress(r, 200)
//	if err != nil {
//		return err
//	}
//
//	root, err := quadpack.Decompress(data)
//	if err != nil {
//		return err
//	}
//	img, err := render.Render(root)
//
// Only the largest top-left square of a non-square image is encoded.
//
// # Package Structure
//
// The helpers here chain the lower-level packages: tree builds the quadtree,
// flat converts it to and from the positional array, blob handles the binary
// format and render paints a tree back into an image. Use those packages
// directly for finer control.
package quadpack

import (
	"context"
	"fmt"
	"image"

	"github.com/arloliu/quadpack/blob"
	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/flat"
	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/raster"
	"github.com/arloliu/quadpack/tree"
)

// MaxThreshold is a threshold at which no built-in metric splits any quadrant.
const MaxThreshold = 3 * 255 * 255 / 3

// Compress builds the quadtree of r, flattens it and encodes it.
//
// Returns:
//   - []byte: encoded tree
//   - error: a tree.BuildRaster, blob.NewEncoder or Encode error
func Compress(r *raster.Raster, threshold int, opts ...Option) ([]byte, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	root, err := tree.BuildRaster(r, threshold, s.builder...)
	if err != nil {
		return nil, err
	}

	enc, err := blob.NewEncoder(s.encoder...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(flat.Flatten(root))
}

// CompressImage converts img to a raster and compresses it.
func CompressImage(img image.Image, threshold int, opts ...Option) ([]byte, error) {
	r, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}

	return Compress(r, threshold, opts...)
}

// Decompress decodes data and rebuilds the tree.
//
// Returns:
//   - *tree.Node: root of the rebuilt tree
//   - error: a decoding error wrapping errs.ErrMalformedInput, or a
//     reconstruction error (errs.ErrIndexOutOfRange, errs.ErrInvalidTopology,
//     errs.ErrPartialSplit)
func Decompress(data []byte, opts ...Option) (*tree.Node, error) {
	arr, _, err := decode(data, opts)
	if err != nil {
		return nil, err
	}

	return arr.Root()
}

// Stats describes an encoded tree.
type Stats struct {
	Nodes       int
	Leaves      int
	MaxDepth    int
	Side        int // image side recovered from the root area
	EncodedSize int
	RawSize     int
	Compression format.CompressionType
	BigEndian   bool
}

// Ratio returns EncodedSize / (Side*Side*3), the size relative to the
// uncompressed RGB square. It is 0 for an empty tree.
func (s Stats) Ratio() float64 {
	pixels := s.Side * s.Side
	if pixels == 0 {
		return 0
	}

	return float64(s.EncodedSize) / float64(pixels*3)
}

// Inspect decodes data and summarizes it.
func Inspect(data []byte, opts ...Option) (Stats, error) {
	arr, info, err := decode(data, opts)
	if err != nil {
		return Stats{}, err
	}

	root, err := arr.Root()
	if err != nil {
		return Stats{}, err
	}
	ts := root.Stats()

	return Stats{
		Nodes:       ts.Nodes,
		Leaves:      ts.Leaves,
		MaxDepth:    ts.MaxDepth,
		Side:        root.Side(),
		EncodedSize: info.EncodedSize,
		RawSize:     info.RawSize,
		Compression: info.Compression,
		BigEndian:   info.BigEndian,
	}, nil
}

func decode(data []byte, opts []Option) (flat.Array, blob.Info, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, blob.Info{}, err
	}

	dec, err := blob.NewDecoder(data, s.decoder...)
	if err != nil {
		return nil, blob.Info{}, err
	}

	arr, err := dec.Decode()
	if err != nil {
		return nil, blob.Info{}, err
	}

	return arr, dec.Info(), nil
}

// SearchResult is the outcome of SearchThreshold.
type SearchResult struct {
	Threshold int // smallest threshold meeting the target
	Nodes     int // node count of the tree built with Threshold
	Builds    int // number of trees built during the search
}

// SearchThreshold finds the smallest threshold whose tree has at most
// targetNodes nodes.
//
// The node count never grows as the threshold rises, so a binary search over
// [0, MaxThreshold] needs about 16 builds. The context is checked before each
// build.
//
// Returns:
//   - SearchResult: chosen threshold and its node count
//   - error: errs.ErrInvalidThreshold for a non-positive target, a build
//     error, or the context's error
func SearchThreshold(ctx context.Context, r *raster.Raster, targetNodes int, opts ...Option) (SearchResult, error) {
	if targetNodes < 1 {
		return SearchResult{}, fmt.Errorf("%w: target node count %d must be positive",
			errs.ErrInvalidThreshold, targetNodes)
	}

	s, err := newSettings(opts)
	if err != nil {
		return SearchResult{}, err
	}

	var res SearchResult
	count := func(threshold int) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		res.Builds++

		root, err := tree.BuildRaster(r, threshold, s.builder...)
		if err != nil {
			return 0, err
		}

		return root.Count(), nil
	}

	lo, hi := 0, MaxThreshold
	hiNodes := -1
	for lo < hi {
		mid := lo + (hi-lo)/2
		nodes, err := count(mid)
		if err != nil {
			return SearchResult{}, err
		}

		if nodes <= targetNodes {
			hi, hiNodes = mid, nodes
		} else {
			lo = mid + 1
		}
	}

	if hiNodes < 0 {
		if hiNodes, err = count(hi); err != nil {
			return SearchResult{}, err
		}
	}
	res.Threshold = hi
	res.Nodes = hiNodes

	return res, nil
}
