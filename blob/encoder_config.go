package blob

import (
	"fmt"

	"github.com/arloliu/quadpack/compress"
	"github.com/arloliu/quadpack/endian"
	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/internal/options"
)

// EncoderConfig holds the encoder's byte order and container settings.
type EncoderConfig struct {
	bigEndian   bool
	engine      endian.EndianEngine
	compression format.CompressionType
	codec       compress.Codec
}

// EncoderOption configures an EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// NewEncoderConfig returns the default configuration: little-endian raw
// output without a container.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
		codec:       compress.NewNoOpCompressor(),
	}
}

// IsBigEndian reports whether records are written big-endian.
func (c *EncoderConfig) IsBigEndian() bool {
	return c.bigEndian
}

// Compression returns the container compression type.
func (c *EncoderConfig) Compression() format.CompressionType {
	return c.compression
}

func (c *EncoderConfig) setEndianness(bigEndian bool) {
	c.bigEndian = bigEndian
	c.engine = endian.GetEngine(bigEndian)
}

func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	codec, err := compress.CreateCodec(comp, "container")
	if err != nil {
		return fmt.Errorf("invalid compression: %w", err)
	}
	c.compression = comp
	c.codec = codec

	return nil
}

// WithLittleEndian writes header and record integers little-endian. It is the
// default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianness(false)
	})
}

// WithBigEndian writes header and record integers big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianness(true)
	})
}

// WithCompression wraps the raw output in a compressed container.
// format.CompressionNone, the default, produces the bare raw format.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}
