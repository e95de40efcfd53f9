// Package config provides configuration types and helpers for oclog.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application-wide configuration.
type Config struct {
	Format  string       `mapstructure:"format"`
	Verbose bool         `mapstructure:"verbose"`
	Junk    JunkConfig   `mapstructure:"junk"`
	Loader  LoaderConfig `mapstructure:"loader"`
	Tail    TailConfig   `mapstructure:"tail"`
	Pager   PagerConfig  `mapstructure:"pager"`
}

// JunkConfig tunes the junk-line heuristic. Captured firmware logs disagree
// on sensible thresholds, so all three knobs are exposed.
type JunkConfig struct {
	NulRatio   float64 `mapstructure:"nul_ratio"`   // NUL-to-length ratio above which a line is junk
	LongLine   int     `mapstructure:"long_line"`   // raw length beyond which near-empty lines are junk
	MinVisible int     `mapstructure:"min_visible"` // visible characters required to keep a long line
}

// LoaderConfig tunes the background chunked loader.
type LoaderConfig struct {
	ChunkSize    int           `mapstructure:"chunk_size"`    // lines per Data message
	PollInterval time.Duration `mapstructure:"poll_interval"` // consumer poll cadence
}

// TailConfig tunes the tail follower.
type TailConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// PagerConfig tunes the paged viewer.
type PagerConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// Load unmarshals the current viper state into a Config.
func Load() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("parse configuration: %w", err)
	}
	return c, nil
}
