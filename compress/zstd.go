package compress

// ZstdCompressor provides Zstandard compression. It gives the best ratio of
// the built-in codecs on node arrays, whose child references are highly
// repetitive.
//
// The default build uses github.com/klauspost/compress/zstd. Building with
// the gozstd tag and cgo enabled switches to github.com/valyala/gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
//
// Example:
//
//	codec := NewZstdCompressor()
//	compressed, err := codec.Compress(raw)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
