// Package compress provides the codecs behind the optional quadpack container.
//
// The raw node array is never compressed in place: an encoder configured with
// a compression type other than format.CompressionNone compresses the whole
// raw payload and wraps it in a container header (see package section) that
// records the codec, the raw length and an xxhash64 checksum.
//
// # Codecs
//
//	format.CompressionNone  NoOpCompressor   pass-through
//	format.CompressionZstd  ZstdCompressor   best ratio
//	format.CompressionS2    S2Compressor     fastest
//	format.CompressionLZ4   LZ4Compressor    fast, block format
//
// ZstdCompressor uses the pure Go github.com/klauspost/compress/zstd by
// default. Build with -tags gozstd (and cgo) to use github.com/valyala/gozstd.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(raw)
//	...
//	raw, err = codec.Decompress(packed, len(raw))
//
// Decompress always takes the expected output length. A result of any other
// length is reported as errs.ErrMalformedInput.
package compress
