package creek

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is the optional TOML configuration of an embedding host.
//
//	log_level = "debug"
//	log_format = "console"
//	allow_native = ["libmath.so"]
type Config struct {
	// LogLevel is a zerolog level name. Empty means info.
	LogLevel string `toml:"log_level"`

	// LogFormat is "json" (the default) or "console".
	LogFormat string `toml:"log_format"`

	// AllowNative lists the native libraries dynamic-load expressions may
	// resolve. When absent every registered library may be loaded; an
	// empty list disables native loading.
	AllowNative []string `toml:"allow_native"`
}

// ParseConfig decodes a TOML configuration. Unknown keys are an error.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown configuration key %q", undecoded[0].String())
	}
	return &c, nil
}

// LoadConfig reads the TOML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	c, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return c, nil
}

// Logger builds the logger the configuration describes, writing to w.
func (c *Config) Logger(w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if c.LogLevel != "" {
		var err error
		if level, err = zerolog.ParseLevel(c.LogLevel); err != nil {
			return zerolog.Nop(), fmt.Errorf("log_level: %w", err)
		}
	}
	switch c.LogFormat {
	case "", "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Options returns the Interpreter options the configuration describes,
// logging to w.
func (c *Config) Options(w io.Writer) ([]Option, error) {
	logger, err := c.Logger(w)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithLogger(logger)}
	if c.AllowNative != nil {
		opts = append(opts, WithAllowNative(c.AllowNative...))
	}
	return opts, nil
}
