package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site     SiteConfig     `yaml:"site" toml:"site"`
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Archive  ArchiveConfig  `yaml:"archive" toml:"archive"`
	S3       S3Config       `yaml:"s3" toml:"s3"`
	Session  SessionConfig  `yaml:"session" toml:"session"`
	Theme    ThemeConfig    `yaml:"theme" toml:"theme"`
	Markdown MarkdownConfig `yaml:"markdown" toml:"markdown"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level" default:"info"`
}

type SiteConfig struct {
	Name    string `yaml:"name" toml:"name" default:"Chronicler"`
	Tagline string `yaml:"tagline" toml:"tagline" default:"Write once, copy to platforms, archive locally."`
}

type ServerConfig struct {
	Host string `yaml:"host" toml:"host" default:"127.0.0.1"`
	Port string `yaml:"port" toml:"port" default:"12600"`
}

type ArchiveConfig struct {
	// Prefilled on the welcome step. Either a local path or s3://bucket/prefix.
	DefaultLocation string `yaml:"default_location" toml:"default_location" default:""`
	// Local directory browsed by the archive library. Empty disables the library.
	LibraryDir        string `yaml:"library_dir" toml:"library_dir" default:""`
	BundleCompression string `yaml:"bundle_compression" toml:"bundle_compression" default:"zstd"`
	ReloadInterval    string `yaml:"reload_interval" toml:"reload_interval" default:"5s"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint" toml:"endpoint" default:""`
	Region          string `yaml:"region" toml:"region" default:"auto"`
	AccessKeyID     string `yaml:"access_key_id" toml:"access_key_id" default:""`
	SecretAccessKey string `yaml:"secret_access_key" toml:"secret_access_key" default:""`
}

type SessionConfig struct {
	IdleTimeout string `yaml:"idle_timeout" toml:"idle_timeout" default:"12h"`
}

type ThemeConfig struct {
	Default            string       `yaml:"default" toml:"default" default:"dark-theme"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting" toml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	DefaultDark  string `yaml:"default_dark" toml:"default_dark" default:"gruvbox"`
	DefaultLight string `yaml:"default_light" toml:"default_light" default:"catppuccin-latte"`
}

type MarkdownConfig struct {
	Renderer string `yaml:"renderer" toml:"renderer" default:"mmark"`
}

var AppConfig = defaultConfig()

func defaultConfig() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

// LoadConfig reads a YAML or TOML file, picked by extension. A missing file
// leaves the defaults in place.
func LoadConfig(path string) error {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		applyEnv(config)
		AppConfig = config
		return nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), config); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return err
	}

	applyEnv(config)
	AppConfig = config
	return nil
}

// applyEnv lets the environment (usually populated from .env) override file values.
func applyEnv(c *Config) {
	if v := os.Getenv(EnvArchiveDir); v != "" {
		c.Archive.DefaultLocation = v
		if c.Archive.LibraryDir == "" && !strings.HasPrefix(v, "s3://") {
			c.Archive.LibraryDir = v
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvS3AccessKeyID); v != "" {
		c.S3.AccessKeyID = v
	}
	if v := os.Getenv(EnvS3SecretAccessKey); v != "" {
		c.S3.SecretAccessKey = v
	}
	if v := os.Getenv(EnvS3Endpoint); v != "" {
		c.S3.Endpoint = v
	}
}

func (c *Config) Validate() error {
	switch c.Archive.BundleCompression {
	case "zstd", "gzip":
	default:
		return fmt.Errorf("invalid archive.bundle_compression %q", c.Archive.BundleCompression)
	}

	switch c.Markdown.Renderer {
	case "mmark", "classic":
	default:
		return fmt.Errorf("invalid markdown.renderer %q", c.Markdown.Renderer)
	}

	if _, err := time.ParseDuration(c.Archive.ReloadInterval); err != nil {
		return fmt.Errorf("invalid archive.reload_interval: %w", err)
	}
	if _, err := time.ParseDuration(c.Session.IdleTimeout); err != nil {
		return fmt.Errorf("invalid session.idle_timeout: %w", err)
	}
	return nil
}

func (c *Config) ReloadInterval() time.Duration {
	d, err := time.ParseDuration(c.Archive.ReloadInterval)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

func (c *Config) SessionIdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Session.IdleTimeout)
	if err != nil || d <= 0 {
		return 12 * time.Hour
	}
	return d
}

// SessionSweepInterval is how often idle sessions are pruned: a quarter of
// the idle timeout, never less than a second.
func (c *Config) SessionSweepInterval() time.Duration {
	return max(c.SessionIdleTimeout()/4, time.Second)
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
