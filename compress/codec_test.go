package compress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/format"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// samplePayload imitates a raw node array: an 8-byte header followed by
// 24-byte records with mostly -1 child references.
func samplePayload(records int) []byte {
	buf := []byte{byte(records), 0, 0, 0, byte(records), 0, 0, 0}
	for i := 0; i < records; i++ {
		buf = append(buf, byte(i), byte(i*3), byte(i*7), 0, 1, 0, 0, 0)
		buf = append(buf, bytes.Repeat([]byte{0xff}, 16)...)
	}

	return buf
}

func TestCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"single leaf": samplePayload(1),
		"small":       samplePayload(21),
		"large":       samplePayload(5000),
		"random-ish":  []byte("0123456789abcdefghijklmnopqrstuvwxyz"),
	}

	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		for name, data := range payloads {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(data)
				require.NoError(t, err)

				out, err := codec.Decompress(packed, len(data))
				require.NoError(t, err)
				require.Equal(t, data, out)
			})
		}
	}
}

func TestCodecs_CompressRepetitivePayload(t *testing.T) {
	data := samplePayload(5000)
	for _, typ := range allTypes[1:] {
		codec, err := CreateCodec(typ, "test")
		require.NoError(t, err)

		packed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(packed), len(data)/2, typ.String())
	}
}

func TestCodecs_Empty(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		out, err := codec.Decompress(nil, 0)
		require.NoError(t, err, typ.String())
		require.Empty(t, out)

		_, err = codec.Decompress(nil, 8)
		require.ErrorIs(t, err, errs.ErrMalformedInput, typ.String())
	}
}

func TestCodecs_SizeMismatch(t *testing.T) {
	data := samplePayload(50)
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		packed, err := codec.Compress(data)
		require.NoError(t, err)

		_, err = codec.Decompress(packed, len(data)+1)
		require.ErrorIs(t, err, errs.ErrMalformedInput, typ.String())
	}
}

func TestZstd_DeclaredSize(t *testing.T) {
	codec := NewZstdCompressor()
	data := samplePayload(50)
	packed, err := codec.Compress(data)
	require.NoError(t, err)

	_, err = codec.Decompress(packed, len(data)-1)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
	require.ErrorContains(t, err, "exceeds the declared")

	_, err = codec.Decompress(packed, len(data)+1)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
	require.ErrorContains(t, err, "shorter than the declared")

	// the pooled decoder is still usable afterwards
	out, err := codec.Decompress(packed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestReadExact(t *testing.T) {
	out, err := readExact("test", bytes.NewReader([]byte("abcd")), 4)
	require.NoError(t, err)
	require.Equal(t, []byte("abcd"), out)

	_, err = readExact("test", bytes.NewReader([]byte("abcde")), 4)
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	_, err = readExact("test", bytes.NewReader([]byte("abc")), 4)
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	_, err = readExact("test", failingReader{}, 4)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
	require.ErrorIs(t, err, errRead)
}

var errRead = errors.New("read failed")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errRead }

func TestCodecs_Corrupted(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02}
	for _, typ := range allTypes[1:] {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage, 1024)
		require.Error(t, err, typ.String())
	}
}

func TestLiteralBlock(t *testing.T) {
	for _, n := range []int{1, 14, 15, 16, 269, 270, 600} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 31)
		}

		block := literalBlock(data)
		out := make([]byte, n)
		got, err := lz4.UncompressBlock(block, out)
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, n, got)
		require.Equal(t, data, out)
	}
}

func TestCreateCodec(t *testing.T) {
	codec, err := CreateCodec(format.CompressionS2, "payload")
	require.NoError(t, err)
	require.IsType(t, S2Compressor{}, codec)

	codec, err = CreateCodec(format.CompressionNone, "payload")
	require.NoError(t, err)
	require.IsType(t, NoOpCompressor{}, codec)

	_, err = CreateCodec(format.CompressionType(0x7f), "payload")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	require.Contains(t, err.Error(), "payload")

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestNoOpCompressor_Aliases(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func BenchmarkCodecs(b *testing.B) {
	data := samplePayload(10000)
	for _, typ := range allTypes {
		codec, _ := GetCodec(typ)
		packed, _ := codec.Compress(data)

		b.Run(typ.String()+"/compress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				_, _ = codec.Compress(data)
			}
		})

		b.Run(typ.String()+"/decompress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				_, _ = codec.Decompress(packed, len(data))
			}
		})
	}
}
