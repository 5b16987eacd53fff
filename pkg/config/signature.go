package config

import (
	_ "embed"
	"time"

	"github.com/pkg/errors"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "INBENTA"

//go:embed default.yaml
var defaultYAML []byte

// Config is the configuration of the signature client, verifier and tools.
type Config struct {
	Signature SignatureConfig `mapstructure:"signature" structs:"signature"`
	Log       LogConfig       `mapstructure:"log" structs:"log"`
}

// SignatureConfig holds the inputs of the signature client.
type SignatureConfig struct {
	// BaseURL is the API base URL; its path is stripped from signed URLs
	BaseURL string `mapstructure:"base_url" structs:"base_url"`

	// Key is the shared signature key
	Key string `mapstructure:"key" structs:"key"`

	// Version is the protocol version, v1 when empty
	Version string `mapstructure:"version" structs:"version"`

	// Timestamp fixes the signing timestamp. 0 means current time.
	Timestamp int64 `mapstructure:"timestamp" structs:"timestamp"`

	// MaxSkew bounds how far a verified request timestamp may drift from
	// the current time. 0 disables the check.
	MaxSkew time.Duration `mapstructure:"max_skew" structs:"max_skew"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level       string `mapstructure:"level" structs:"level"`
	Development bool   `mapstructure:"development" structs:"development"`
}

// Load reads config.yaml from paths, falling back to the embedded defaults,
// with INBENTA_* environment overrides.
func Load(paths []string, opts ...Option) (*Config, error) {
	opts = append([]Option{
		WithEnvPrefix(EnvPrefix),
		WithDefaults(map[string]any{
			"signature.version": "v1",
			"log.level":         "info",
		}),
	}, opts...)

	cfg, err := ParseConfigWithEmbedded[Config](paths, defaultYAML, opts...)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields required to build a signature client.
func (c *SignatureConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("signature.base_url is required")
	}
	if c.Key == "" {
		return errors.New("signature.key is required")
	}
	if c.Timestamp < 0 {
		return errors.Errorf("signature.timestamp must not be negative, got %d", c.Timestamp)
	}
	if c.MaxSkew < 0 {
		return errors.Errorf("signature.max_skew must not be negative, got %s", c.MaxSkew)
	}
	return nil
}
