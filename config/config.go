// Package config resolves markgen settings from defaults, a config file,
// MARKGEN_* environment variables and command-line overrides.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/markgen/core"
	"github.com/gaurav-prasanna/markgen/core/fetch"
)

// ConfigOption describes one configuration key and its default.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration keys, their defaults and meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "dialect", Default: string(core.RST), Comment: "Markup dialect when neither --rst nor --markdown is given (rst|md)"},
		{Key: "output_dir", Default: "", Comment: "Directory for generated files; empty means the working directory"},

		{Key: "fetch.timeout", Default: "30s", Comment: "HTTP timeout for remote sources"},
		{Key: "fetch.user_agent", Default: fetch.DefaultUserAgent, Comment: "User-Agent header for remote sources"},
		{Key: "crawl.max_pages", Default: 100, Comment: "Page limit when rendering a whole site with --all"},
		{Key: "preview.style", Default: "dark", Comment: "Terminal preview style (dark|light|notty|ascii|dracula|pink)"},
		{Key: "preview.width", Default: 80, Comment: "Terminal preview word wrap width"},
		{Key: "pdf.font_size", Default: 10.0, Comment: "PDF body font size in points"},
	}
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// Flag overrides are applied by the caller afterwards with v.Set.
func Load(ctx context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("markgen")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "markgen"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "markgen"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file is fine unless the user named one.
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("markgen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("dialect")) == "" {
		v.Set("dialect", string(core.RST))
	}
	return nil
}

// CheckConfigValidity reports every invalid setting in one error.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	if _, err := core.ParseDialect(v.GetString("dialect")); err != nil {
		errs = append(errs, fmt.Errorf("dialect %q is not supported (rst|md)", v.GetString("dialect")))
	}
	if d, err := time.ParseDuration(v.GetString("fetch.timeout")); err != nil {
		errs = append(errs, fmt.Errorf("fetch.timeout must be a duration: %w", err))
	} else if d <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be greater than 0"))
	}
	if strings.TrimSpace(v.GetString("fetch.user_agent")) == "" {
		errs = append(errs, errors.New("fetch.user_agent is required"))
	}
	if v.GetInt("crawl.max_pages") <= 0 {
		errs = append(errs, errors.New("crawl.max_pages must be greater than 0"))
	}
	if v.GetInt("preview.width") <= 0 {
		errs = append(errs, errors.New("preview.width must be greater than 0"))
	}
	if v.GetFloat64("pdf.font_size") <= 0 {
		errs = append(errs, errors.New("pdf.font_size must be greater than 0"))
	}

	return errors.Join(errs...)
}

// Settings is a typed snapshot of a loaded configuration.
type Settings struct {
	Dialect      core.Dialect
	OutputDir    string
	FetchTimeout time.Duration
	UserAgent    string
	MaxPages     int
	PreviewStyle string
	PreviewWidth int
	PDFFontSize  float64
}

// Resolve validates v and returns its settings.
func Resolve(v *viper.Viper) (Settings, error) {
	if err := CheckConfigValidity(v); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	d, _ := core.ParseDialect(v.GetString("dialect"))
	timeout, _ := time.ParseDuration(v.GetString("fetch.timeout"))

	return Settings{
		Dialect:      d,
		OutputDir:    expandHome(v.GetString("output_dir")),
		FetchTimeout: timeout,
		UserAgent:    v.GetString("fetch.user_agent"),
		MaxPages:     v.GetInt("crawl.max_pages"),
		PreviewStyle: v.GetString("preview.style"),
		PreviewWidth: v.GetInt("preview.width"),
		PDFFontSize:  v.GetFloat64("pdf.font_size"),
	}, nil
}

func expandHome(dir string) string {
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[1:])
		}
	}
	return dir
}

// DefaultConfigPath resolves the standard markgen.yaml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "markgen", "markgen.yaml")
}
