package blob

import (
	"bytes"
	"errors"
	"runtime"
	"testing"

	"github.com/arloliu/quadpack/errs"
	"github.com/arloliu/quadpack/flat"
	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/raster"
	"github.com/arloliu/quadpack/section"
	"github.com/arloliu/quadpack/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func checkerboardArray(t *testing.T, side int) flat.Array {
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

	root, err := tree.BuildRaster(r, 0)
	require.NoError(t, err)

	return flat.Flatten(root)
}

func singleLeaf() flat.Array {
	return flat.Array{flat.Leaf(raster.Color{R: 10, G: 20, B: 30}, 64)}
}

func TestEncoder_RawLayout(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	data, err := enc.Encode(singleLeaf())
	require.NoError(t, err)
	require.Equal(t, []byte{
		1, 0, 0, 0, // leafCount
		1, 0, 0, 0, // nodeCount
		10, 20, 30, 0,
		64, 0, 0, 0,
		0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff,
	}, data)
}

func TestEncoder_BigEndianLayout(t *testing.T) {
	enc, err := NewEncoder(WithBigEndian())
	require.NoError(t, err)
	require.True(t, enc.Config().IsBigEndian())

	data, err := enc.Encode(checkerboardArray(t, 4))
	require.NoError(t, err)
	require.Len(t, data, section.HeaderSize+21*section.RecordSize)
	require.Equal(t, []byte{0, 0, 0, 16, 0, 0, 0, 21}, data[:8])
	// root area and first child reference
	require.Equal(t, []byte{0, 0, 0, 16}, data[12:16])
	require.Equal(t, []byte{0, 0, 0, 1}, data[16:20])
}

func TestRoundTrip(t *testing.T) {
	arrays := map[string]flat.Array{
		"single leaf":  singleLeaf(),
		"checkerboard": checkerboardArray(t, 8),
	}

	encoderOpts := map[string][]EncoderOption{
		"little-endian":    nil,
		"explicit little":  {WithLittleEndian()},
		"big-endian":       {WithBigEndian()},
		"zstd":             {WithCompression(format.CompressionZstd)},
		"s2 big-endian":    {WithCompression(format.CompressionS2), WithBigEndian()},
		"lz4":              {WithCompression(format.CompressionLZ4)},
		"none (raw)":       {WithCompression(format.CompressionNone)},
		"zstd then little": {WithBigEndian(), WithCompression(format.CompressionZstd), WithLittleEndian()},
	}

	for arrName, arr := range arrays {
		for optName, opts := range encoderOpts {
			t.Run(arrName+"/"+optName, func(t *testing.T) {
				enc, err := NewEncoder(opts...)
				require.NoError(t, err)

				data, err := enc.Encode(arr)
				require.NoError(t, err)

				var decOpts []DecoderOption
				if enc.Config().IsBigEndian() && enc.Config().Compression() == format.CompressionNone {
					decOpts = append(decOpts, WithDecoderBigEndian())
				}

				dec, err := NewDecoder(data, decOpts...)
				require.NoError(t, err)

				info := dec.Info()
				require.Equal(t, enc.Config().Compression(), info.Compression)
				require.Equal(t, enc.Config().IsBigEndian(), info.BigEndian)
				require.Equal(t, len(data), info.EncodedSize)
				require.Equal(t, section.HeaderSize+len(arr)*section.RecordSize, info.RawSize)
				require.Equal(t, uint32(len(arr)), dec.Header().NodeCount)       //nolint: gosec
				require.Equal(t, uint32(arr.LeafCount()), dec.Header().LeafCount) //nolint: gosec

				got, err := dec.Decode()
				require.NoError(t, err)
				require.Empty(t, cmp.Diff(arr, got))
			})
		}
	}
}

func TestEncodeTo(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := enc.EncodeTo(&buf, singleLeaf())
	require.NoError(t, err)
	require.Equal(t, int64(section.HeaderSize+section.RecordSize), n)

	want, err := enc.Encode(singleLeaf())
	require.NoError(t, err)
	require.Equal(t, want, buf.Bytes())

	_, err = enc.EncodeTo(failingWriter{}, singleLeaf())
	require.ErrorIs(t, err, errs.ErrIO)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncoder_Errors(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	_, err = enc.Encode(flat.Array{})
	require.ErrorIs(t, err, errs.ErrEmptyArray)

	bad := checkerboardArray(t, 4)
	bad[0].Children[0] = 100
	_, err = enc.Encode(bad)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = NewEncoder(WithCompression(format.CompressionType(0x42)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestDecoder_RawErrors(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	good, err := enc.Encode(checkerboardArray(t, 4))
	require.NoError(t, err)

	mutate := func(fn func(b []byte) []byte) []byte {
		return fn(append([]byte(nil), good...))
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty input", nil, errs.ErrInvalidHeaderSize},
		{"short header", good[:5], errs.ErrInvalidHeaderSize},
		{"truncated records", good[:len(good)-3], errs.ErrNodeCountMismatch},
		{"trailing bytes", append(append([]byte(nil), good...), 0), errs.ErrNodeCountMismatch},
		{"zero nodes", []byte{0, 0, 0, 0, 0, 0, 0, 0}, errs.ErrEmptyArray},
		{"wrong node count", mutate(func(b []byte) []byte { b[4] = 20; return b }), errs.ErrNodeCountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(tt.data)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, errs.ErrMalformedInput)
		})
	}

	decodeTests := []struct {
		name string
		data []byte
		want error
	}{
		{"wrong leaf count", mutate(func(b []byte) []byte { b[0] = 15; return b }), errs.ErrLeafCountMismatch},
		{
			"child past end",
			mutate(func(b []byte) []byte {
				// root TL reference
				b[section.HeaderSize+8] = 99
				return b
			}),
			errs.ErrIndexOutOfRange,
		},
		{
			"backward reference",
			mutate(func(b []byte) []byte {
				// record 1 (first split child) TL reference -> 0
				b[section.HeaderSize+section.RecordSize+8] = 0
				return b
			}),
			errs.ErrInvalidTopology,
		},
	}

	for _, tt := range decodeTests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := NewDecoder(tt.data)
			require.NoError(t, err)

			_, err = dec.Decode()
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecoder_WrongByteOrder(t *testing.T) {
	enc, err := NewEncoder(WithBigEndian())
	require.NoError(t, err)
	data, err := enc.Encode(checkerboardArray(t, 4))
	require.NoError(t, err)

	_, err = NewDecoder(data)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestDecoder_ContainerErrors(t *testing.T) {
	enc, err := NewEncoder(WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	good, err := enc.Encode(checkerboardArray(t, 8))
	require.NoError(t, err)
	require.True(t, section.IsContainer(good))

	t.Run("checksum mismatch", func(t *testing.T) {
		b := append([]byte(nil), good...)
		b[8] ^= 0xff
		_, err := NewDecoder(b)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("unknown compression", func(t *testing.T) {
		b := append([]byte(nil), good...)
		b[3] = 0x55
		_, err := NewDecoder(b)
		require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	})

	t.Run("declared length too large", func(t *testing.T) {
		_, err := NewDecoder(good, WithMaxRawSize(16))
		require.ErrorIs(t, err, errs.ErrInvalidContainer)
	})

	t.Run("declared length wrong", func(t *testing.T) {
		b := append([]byte(nil), good...)
		b[4]++
		_, err := NewDecoder(b)
		require.ErrorIs(t, err, errs.ErrMalformedInput)
	})

	t.Run("payload larger than declared", func(t *testing.T) {
		// 64 MiB of zeros packs into a few KiB; the header claims 32 bytes.
		var frame bytes.Buffer
		zw, err := zstd.NewWriter(&frame, zstd.WithWindowSize(1<<20))
		require.NoError(t, err)
		chunk := make([]byte, 1<<20)
		for i := 0; i < 64; i++ {
			_, err = zw.Write(chunk)
			require.NoError(t, err)
		}
		require.NoError(t, zw.Close())

		header := section.NewContainerHeader(format.CompressionZstd, false)
		header.RawLength = 32
		b := append(header.Bytes(), frame.Bytes()...)

		var before, after runtime.MemStats
		runtime.GC()
		runtime.ReadMemStats(&before)
		_, err = NewDecoder(b)
		runtime.ReadMemStats(&after)

		require.ErrorIs(t, err, errs.ErrMalformedInput)
		require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(16<<20))
	})

	t.Run("corrupted payload", func(t *testing.T) {
		b := append([]byte(nil), good[:section.ContainerHeaderSize]...)
		b = append(b, 0xde, 0xad, 0xbe, 0xef)
		_, err := NewDecoder(b)
		require.ErrorIs(t, err, errs.ErrMalformedInput)
	})

	t.Run("header only", func(t *testing.T) {
		_, err := NewDecoder(good[:4])
		require.ErrorIs(t, err, errs.ErrMalformedInput)
	})
}

func TestDecoder_Options(t *testing.T) {
	_, err := NewDecoder(nil, WithMaxRawSize(0))
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrMalformedInput)

	enc, err := NewEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(singleLeaf())
	require.NoError(t, err)

	dec, err := NewDecoder(data, WithDecoderBigEndian(), WithDecoderLittleEndian())
	require.NoError(t, err)
	require.False(t, dec.Info().BigEndian)
}
