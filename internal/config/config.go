package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"price-matcher/internal/pricematch/model"
)

type Config struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	AllowOrigins   []string      `mapstructure:"allow_origins"`
	LogLevel       string        `mapstructure:"log_level"`
	MaxUploadMB    int           `mapstructure:"max_upload_mb"`
	LogFile        string        `mapstructure:"log_file"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Rules          model.Rules   `mapstructure:"rules"`
}

// Load: дефолты -> config.yaml (если есть) -> переменные окружения.
// Ключи правил в окружении: RULES_HANDLING_FEE, RULES_CAPACITY_FAMILIES="IPHONE 15,IPHONE 16" и т.п.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/price-matcher/")
	if p := strings.TrimSpace(os.Getenv("CONFIG_FILE")); p != "" {
		v.SetConfigFile(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8082)
	v.SetDefault("allow_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("max_upload_mb", 256)
	v.SetDefault("log_file", "logs/price-matcher.log")
	v.SetDefault("rate_limit_rps", 20.0)
	v.SetDefault("rate_limit_burst", 40)
	v.SetDefault("request_timeout", "30s")

	r := model.DefaultRules()
	v.SetDefault("rules.capacity_families", r.CapacityFamilies)
	v.SetDefault("rules.color_families", r.ColorFamilies)
	v.SetDefault("rules.color_exempt_categories", r.ColorExemptCategories)
	v.SetDefault("rules.colors", r.Colors)
	v.SetDefault("rules.category_labels", r.CategoryLabels)
	v.SetDefault("rules.handling_fee", r.HandlingFee)
	v.SetDefault("rules.loose_containment", r.LooseContainment)
	deductions := make([]map[string]any, 0, len(r.Deductions))
	for _, d := range r.Deductions {
		deductions = append(deductions, map[string]any{"keyword": d.Keyword, "amount": d.Amount})
	}
	v.SetDefault("rules.deductions", deductions)
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload must be positive, got %d MB", c.MaxUploadMB)
	}
	if c.RequestTimeout < 0 {
		return errors.New("request timeout must not be negative")
	}
	return c.Rules.Validate()
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }
