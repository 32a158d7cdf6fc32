package conf

import (
	"fmt"
	"strings"
	"time"

	"github.com/lk2023060901/nitionsearch-console/internal/pkg/logger"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/types"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/view"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SEARCHUI_SEARCH_API_HOST
const EnvPrefix = "SEARCHUI"

type Config struct {
	Server ServerConfig         `mapstructure:"server"`
	Search types.ProviderConfig `mapstructure:"search"`
	Render RenderConfig         `mapstructure:"render"`
	Log    logger.Config        `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RenderConfig struct {
	Markup string `mapstructure:"markup"`
	Title  string `mapstructure:"title"`
}

// Addr returns the listen address of the preview server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MarkupPolicy parses render.markup
func (c RenderConfig) MarkupPolicy() (view.MarkupPolicy, error) {
	return view.ParseMarkupPolicy(c.Markup)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("search.api_host", "http://localhost:8080")
	v.SetDefault("search.user_agent", "")
	v.SetDefault("search.timeout", "0s")
	v.SetDefault("search.sort_order", "")

	v.SetDefault("render.markup", string(view.MarkupTrusted))
	v.SetDefault("render.title", "NitionSearch")

	d := logger.DefaultConfig()
	v.SetDefault("log.level", d.Level)
	v.SetDefault("log.format", d.Format)
	v.SetDefault("log.output", d.Output)
	v.SetDefault("log.enable_caller", d.EnableCaller)
	v.SetDefault("log.enable_stacktrace", d.EnableStacktrace)
	v.SetDefault("log.file.filename", d.File.Filename)
	v.SetDefault("log.file.max_size", d.File.MaxSize)
	v.SetDefault("log.file.max_age", d.File.MaxAge)
	v.SetDefault("log.file.max_backups", d.File.MaxBackups)
	v.SetDefault("log.file.compress", d.File.Compress)
}

// LoadConfig reads the YAML file at path over the built-in defaults and
// applies SEARCHUI_* environment overrides. An empty path uses defaults and
// environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if _, err := c.Render.MarkupPolicy(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}
	return nil
}
