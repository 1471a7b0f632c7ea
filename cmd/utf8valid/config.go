package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/happy-sdk/happy/pkg/strings/humanize"

	"github.com/coregx/utf8valid"
	"github.com/coregx/utf8valid/internal/conv"
)

// Config holds the command configuration. Environment variables provide the
// defaults; flags override them.
type Config struct {
	// ChunkSize is the number of bytes read and validated per step, as a
	// byte count with an optional unit ("4096", "64KiB", "1MB").
	ChunkSize string `env:"CHUNK_SIZE,default:64KiB"`

	// BlockSize and ASCIIFastPath configure the one-shot validator used for
	// chunks that start on a sequence boundary.
	BlockSize     int  `env:"BLOCK_SIZE,default:16"`
	ASCIIFastPath bool `env:"ASCII_FAST_PATH,default:true"`

	// Include and Exclude are comma-separated glob patterns applied to files
	// found while walking directories.
	Include string `env:"INCLUDE"`
	Exclude string `env:"EXCLUDE"`

	LogLevel string `env:"LOG_LEVEL,default:info"`
}

// envPrefix is prepended to every env tag of Config.
const envPrefix = "UTF8VALID_"

// loadConfig returns the configuration from the environment.
func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := c.chunkBytes(); err != nil {
		return err
	}
	vcfg := c.validatorConfig()
	if err := vcfg.Validate(); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

// maxChunkSize bounds the read buffer.
const maxChunkSize = 1 << 30

func (c *Config) chunkBytes() (int, error) {
	n, err := humanize.ParseBytes(c.ChunkSize)
	if err != nil {
		return 0, fmt.Errorf("invalid chunk size %q: %w", c.ChunkSize, err)
	}
	if n == 0 || n > maxChunkSize {
		return 0, fmt.Errorf("chunk size must be between 1 B and %s, got %s", humanize.IBytes(maxChunkSize), c.ChunkSize)
	}
	return conv.Uint64ToInt(n), nil
}

func (c *Config) validatorConfig() utf8valid.Config {
	return utf8valid.Config{BlockSize: c.BlockSize, ASCIIFastPath: c.ASCIIFastPath}
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.New("log level must be debug, info, warn or error, got " + c.LogLevel)
	}
	return level, nil
}

// splitPatterns splits a comma-separated pattern list, dropping empty items.
func splitPatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
