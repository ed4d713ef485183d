package format

import (
	"fmt"
	"strings"
)

type (
	CompressionType uint8
	MetricType      uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone writes the raw node array as is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd wraps the raw array with Zstandard.
	CompressionS2   CompressionType = 0x3 // CompressionS2 wraps the raw array with S2.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 wraps the raw array with LZ4 block compression.
)

const (
	MetricVariance MetricType = 0x1 // MetricVariance is the mean squared channel deviation.
	MetricMAD      MetricType = 0x2 // MetricMAD is the mean absolute channel deviation.
	MetricMaxDiff  MetricType = 0x3 // MetricMaxDiff is the mean channel range (max - min).
	MetricEntropy  MetricType = 0x4 // MetricEntropy is the mean channel histogram entropy.
	MetricSSIM     MetricType = 0x5 // MetricSSIM is the structural dissimilarity to the mean block.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// IsValid reports whether m is a known metric type.
func (m MetricType) IsValid() bool {
	return m >= MetricVariance && m <= MetricSSIM
}

func (m MetricType) String() string {
	switch m {
	case MetricVariance:
		return "Variance"
	case MetricMAD:
		return "MAD"
	case MetricMaxDiff:
		return "MaxDiff"
	case MetricEntropy:
		return "Entropy"
	case MetricSSIM:
		return "SSIM"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name ("none", "zstd", "s2", "lz4")
// to its CompressionType. An empty name selects CompressionNone.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression type %q", name)
	}
}

// ParseMetricType maps a case-insensitive name ("variance", "mad", "maxdiff",
// "entropy", "ssim") to its MetricType. An empty name selects MetricVariance.
func ParseMetricType(name string) (MetricType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "variance":
		return MetricVariance, nil
	case "mad":
		return MetricMAD, nil
	case "maxdiff", "max-diff":
		return MetricMaxDiff, nil
	case "entropy":
		return MetricEntropy, nil
	case "ssim":
		return MetricSSIM, nil
	default:
		return 0, fmt.Errorf("unknown metric type %q", name)
	}
}
