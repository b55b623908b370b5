package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"price-recon-service/internal/compare/model"
	"price-recon-service/internal/modelcode"
)

type Config struct {
	Host             string
	Port             int
	AllowOrigins     []string
	LogLevel         string
	MaxUploadMB      int
	LogFile          string
	SourceOrder      []model.Source
	Brands           []modelcode.Brand // пусто: без фильтра по бренду
	SuggestThreshold float64           // 0: без подсказок
}

// Load: значения по умолчанию, затем необязательный config.yaml, затем окружение (HOST, PORT, ...).
// CONFIG_FILE задаёт путь к файлу явно.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if p := v.GetString("config_file"); p != "" {
		v.SetConfigFile(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Host:             v.GetString("host"),
		Port:             v.GetInt("port"),
		AllowOrigins:     list(v, "allow_origins"),
		LogLevel:         v.GetString("log_level"),
		MaxUploadMB:      v.GetInt("max_upload_mb"),
		LogFile:          v.GetString("log_file"),
		SuggestThreshold: v.GetFloat64("suggest_threshold"),
	}
	for _, s := range list(v, "source_order") {
		cfg.SourceOrder = append(cfg.SourceOrder, model.Source(strings.ToUpper(s)))
	}
	for _, s := range list(v, "brands") {
		b, ok := modelcode.ParseBrand(s)
		if !ok {
			return Config{}, fmt.Errorf("unknown brand %q", s)
		}
		cfg.Brands = append(cfg.Brands, b)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8082)
	v.SetDefault("allow_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_upload_mb", 256)
	v.SetDefault("log_file", "logs/price-recon.log")
	v.SetDefault("source_order", "DIM_KAVA,ALTA,KONTAKT,ELITE,COFFEEHUB")
	v.SetDefault("brands", "delonghi,melitta")
	v.SetDefault("suggest_threshold", 0.85)
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	if c.SuggestThreshold < 0 || c.SuggestThreshold > 1 {
		return fmt.Errorf("suggest_threshold must be in [0,1], got %g", c.SuggestThreshold)
	}
	return nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Options: параметры сравнения из конфига.
func (c Config) Options() model.Options {
	return model.Options{SourceOrder: c.SourceOrder, SuggestThreshold: c.SuggestThreshold}
}

// list: в окружении через запятую, в yaml: строкой или списком.
func list(v *viper.Viper, key string) []string {
	var raw []string
	switch x := v.Get(key).(type) {
	case string:
		raw = strings.Split(x, ",")
	default:
		raw = v.GetStringSlice(key)
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
