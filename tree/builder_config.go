package tree

import (
	"fmt"

	"github.com/arloliu/quadpack/format"
	"github.com/arloliu/quadpack/internal/options"
	"github.com/arloliu/quadpack/metric"
)

// BuilderConfig holds the tunables of Build.
type BuilderConfig struct {
	metric   metric.Metric
	minSize  int
	maxDepth int
}

// BuilderOption configures a BuilderConfig.
type BuilderOption = options.Option[*BuilderConfig]

// NewBuilderConfig returns the default configuration: variance scoring, no
// minimum quadrant size beyond one pixel, unlimited depth.
func NewBuilderConfig() *BuilderConfig {
	return &BuilderConfig{
		metric:   metric.Variance{},
		minSize:  1,
		maxDepth: 0,
	}
}

// Metric returns the configured split metric.
func (c *BuilderConfig) Metric() metric.Metric {
	return c.metric
}

// MinSize returns the smallest child side a split may produce.
func (c *BuilderConfig) MinSize() int {
	return c.minSize
}

// MaxDepth returns the depth limit, 0 meaning unlimited.
func (c *BuilderConfig) MaxDepth() int {
	return c.maxDepth
}

// WithMetric sets the split metric.
func WithMetric(m metric.Metric) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if m == nil {
			return fmt.Errorf("nil metric")
		}
		c.metric = m

		return nil
	})
}

// WithMetricType selects one of the built-in split metrics.
func WithMetricType(t format.MetricType) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		m, err := metric.Get(t)
		if err != nil {
			return err
		}
		c.metric = m

		return nil
	})
}

// WithMinSize stops splitting when the children would be smaller than n
// pixels on a side. The default of 1 allows splitting down to single pixels.
func WithMinSize(n int) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if n < 1 {
			return fmt.Errorf("invalid min size %d: must be at least 1", n)
		}
		c.minSize = n

		return nil
	})
}

// WithMaxDepth stops splitting at depth d (the root is depth 0). Zero means
// unlimited.
func WithMaxDepth(d int) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if d < 0 {
			return fmt.Errorf("invalid max depth %d: must not be negative", d)
		}
		c.maxDepth = d

		return nil
	})
}
