package quadpack

import (
	"github.com/arloliu/quadpack/blob"
	"github.com/arloliu/quadpack/internal/options"
	"github.com/arloliu/quadpack/tree"
)

type settings struct {
	builder []tree.BuilderOption
	encoder []blob.EncoderOption
	decoder []blob.DecoderOption
}

// Option configures the package-level helpers.
type Option = options.Option[*settings]

// WithBuilderOptions passes options to tree.BuildRaster.
func WithBuilderOptions(opts ...tree.BuilderOption) Option {
	return options.NoError(func(s *settings) {
		s.builder = append(s.builder, opts...)
	})
}

// WithEncoderOptions passes options to blob.NewEncoder.
func WithEncoderOptions(opts ...blob.EncoderOption) Option {
	return options.NoError(func(s *settings) {
		s.encoder = append(s.encoder, opts...)
	})
}

// WithDecoderOptions passes options to blob.NewDecoder.
func WithDecoderOptions(opts ...blob.DecoderOption) Option {
	return options.NoError(func(s *settings) {
		s.decoder = append(s.decoder, opts...)
	})
}

func newSettings(opts []Option) (*settings, error) {
	s := &settings{}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}
