package blob

import (
	"fmt"

	"github.com/arloliu/quadpack/endian"
	"github.com/arloliu/quadpack/internal/options"
)

// DefaultMaxRawSize bounds the decompressed size a container may declare.
const DefaultMaxRawSize = 1 << 30

// DecoderConfig holds decoder settings.
type DecoderConfig struct {
	engine     endian.EndianEngine
	maxRawSize int
}

// DecoderOption configures a DecoderConfig.
type DecoderOption = options.Option[*DecoderConfig]

// NewDecoderConfig returns the default configuration: raw input is read
// little-endian and containers may declare up to DefaultMaxRawSize bytes.
func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		engine:     endian.GetLittleEndianEngine(),
		maxRawSize: DefaultMaxRawSize,
	}
}

// WithDecoderBigEndian reads raw input as big-endian. Containers record their
// own byte order and ignore this option.
func WithDecoderBigEndian() DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithDecoderLittleEndian reads raw input as little-endian, the default.
func WithDecoderLittleEndian() DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithMaxRawSize limits the raw payload size a container may declare.
func WithMaxRawSize(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if n < 1 {
			return fmt.Errorf("invalid max raw size %d: must be positive", n)
		}
		c.maxRawSize = n

		return nil
	})
}
