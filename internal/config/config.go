// Package config loads schemaview settings.
//
// Settings are resolved in increasing precedence: built-in defaults, a TOML
// file, SCHEMAVIEW_* environment variables (optionally seeded from a .env
// file) and finally command-line flags, which the CLI applies on top of the
// loaded Config before calling Validate.
//
// A complete file looks like:
//
//	[layout]
//	engine = "native"
//	rank_sep = 140
//
//	[route]
//	intersection_weight = 7000
//	bend_weight = 22
//
//	[viewport]
//	comfort_zoom = 0.72
//	duration = "400ms"
//
//	[cache]
//	backend = "redis"
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/schemaview/pkg/cache"
	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/errors"
	"github.com/matzehuels/schemaview/pkg/highlight"
	"github.com/matzehuels/schemaview/pkg/layout"
	"github.com/matzehuels/schemaview/pkg/render"
	"github.com/matzehuels/schemaview/pkg/route"
	"github.com/matzehuels/schemaview/pkg/view"
	"github.com/matzehuels/schemaview/pkg/viewport"
)

// DefaultFile is read when no config path is given and it exists.
const DefaultFile = "schemaview.toml"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the complete schemaview configuration.
type Config struct {
	Size      diagram.Sizing   `toml:"size"`
	Layout    LayoutConfig     `toml:"layout"`
	Route     route.Options    `toml:"route"`
	Render    render.Options   `toml:"render"`
	Viewport  viewport.Options `toml:"viewport"`
	Highlight highlight.Styles `toml:"highlight"`
	Cache     CacheConfig      `toml:"cache"`
	Server    ServerConfig     `toml:"server"`
	Log       LogConfig        `toml:"log"`
}

// LayoutConfig selects the layout engine and its separations.
type LayoutConfig struct {
	Engine string `toml:"engine" env:"ENGINE"`
	layout.Options
}

// CacheConfig selects where computed layouts are cached.
type CacheConfig struct {
	Backend string            `toml:"backend" env:"CACHE_BACKEND"` // none, file or redis
	Dir     string            `toml:"dir" env:"CACHE_DIR"`         // file backend; empty selects the user cache dir
	Prefix  string            `toml:"prefix" env:"CACHE_PREFIX"`   // prepended to every layout key
	Redis   cache.RedisConfig `toml:"redis" envPrefix:"REDIS_"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `toml:"addr" env:"SERVER_ADDR"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	MaxBodyBytes    int64         `toml:"max_body_bytes"`
	MaxSessions     int           `toml:"max_sessions" env:"MAX_SESSIONS"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`
	Format string `toml:"format" env:"LOG_FORMAT"` // text or json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Size:      diagram.DefaultSizing(),
		Layout:    LayoutConfig{Engine: layout.EngineNative, Options: layout.DefaultOptions()},
		Route:     route.DefaultOptions(),
		Render:    render.DefaultOptions(),
		Viewport:  viewport.DefaultOptions(),
		Highlight: highlight.DefaultStyles(),
		Cache:     CacheConfig{Backend: BackendFile},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    8 << 20,
			MaxSessions:     1000,
		},
		Log: LogConfig{Level: "info", Format: FormatText},
	}
}

// Load resolves the configuration from defaults, the TOML file at path and
// the environment. An empty path reads DefaultFile when it exists; an
// explicit path must exist. envFiles are .env files to seed the
// environment from; missing ones are skipped.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.decodeFile(path, explicit); err != nil {
		return cfg, err
	}
	if err := LoadDotEnv(envFiles...); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decodeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return c.Decode(string(data))
}

// Decode merges TOML data into c. Keys the Config does not know are
// rejected so that typos do not pass silently.
func (c *Config) Decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return nil
}

// View returns the engine options the configuration describes.
func (c Config) View() view.Options {
	return view.Options{
		Engine:   c.Layout.Engine,
		Sizing:   c.Size,
		Layout:   c.Layout.Options,
		Route:    c.Route,
		Render:   c.Render,
		Viewport: c.Viewport,
		Styles:   c.Highlight,
	}
}

// Logger returns a logger writing to w per the [log] section.
func (c Config) Logger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           c.LogLevel(),
	})
	if c.Log.Format == FormatJSON {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}

// LogLevel returns the configured level, or info when it does not parse.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// OpenCache opens the configured cache backend.
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Redis)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendFile, "":
		fc, err := cache.NewFileCache(c.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		return fc, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Backend)
}

// Keyer returns the layout keyer, scoped by Prefix when one is set.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Prefix)
}
