package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by LoadFromEnv.
const EnvPrefix = "QUADPACK_"

// LoadFromEnv overrides fields from QUADPACK_* environment variables.
// Unset or unparsable variables leave the field unchanged.
func (c *Config) LoadFromEnv() {
	c.TargetNodes = GetEnvInt(EnvPrefix+"TARGET_NODES", c.TargetNodes)
	c.Metric = GetEnvStr(EnvPrefix+"METRIC", c.Metric)
	c.MinSize = GetEnvInt(EnvPrefix+"MIN_SIZE", c.MinSize)
	c.MaxDepth = GetEnvInt(EnvPrefix+"MAX_DEPTH", c.MaxDepth)
	c.Compression = GetEnvStr(EnvPrefix+"COMPRESSION", c.Compression)
	c.BigEndian = GetEnvBool(EnvPrefix+"BIG_ENDIAN", c.BigEndian)

	c.Log.Level = GetEnvStr(EnvPrefix+"LOG_LEVEL", c.Log.Level)
	c.Log.Format = GetEnvStr(EnvPrefix+"LOG_FORMAT", c.Log.Format)
	c.Log.File = GetEnvStr(EnvPrefix+"LOG_FILE", c.Log.File)
}

// GetEnvStr returns string env var or fallback.
func GetEnvStr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// GetEnvInt returns int env var or fallback.
func GetEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}

	return fallback
}

// GetEnvBool returns bool env var or fallback.
func GetEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}

	return fallback
}
