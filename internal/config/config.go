// Package config
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Address         string        `mapstructure:"http_addr" validate:"required"`
	Mode            string        `mapstructure:"-" validate:"oneof=serve stream snapshot"`
	Interval        time.Duration `mapstructure:"scrape_interval" validate:"gt=0"`
	HistoryCapacity int           `mapstructure:"history_capacity" validate:"min=1,max=86400"`
	DiskMount       string        `mapstructure:"disk_mount" validate:"required"`
	TopProcesses    int           `mapstructure:"top_processes" validate:"min=1,max=100"`
	ProcessNameMax  int           `mapstructure:"process_name_max" validate:"min=1"`
	ThermalSource   string        `mapstructure:"thermal_source" validate:"oneof=auto vcgencmd hwmon none"`
	VcgencmdPath    string        `mapstructure:"vcgencmd_path"`
	ThermalTimeout  time.Duration `mapstructure:"thermal_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `mapstructure:"-"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format" validate:"oneof=text json"`
}

const (
	ModeServe    = "serve"
	ModeStream   = "stream"
	ModeSnapshot = "snapshot"
)

const (
	ThermalAuto     = "auto"
	ThermalVcgencmd = "vcgencmd"
	ThermalHwmon    = "hwmon"
	ThermalNone     = "none"
)

var defaults = map[string]any{
	"http_addr":        ":5000",
	"scrape_interval":  "1s",
	"history_capacity": 60,
	"disk_mount":       "/",
	"top_processes":    10,
	"process_name_max": 30,
	"thermal_source":   ThermalAuto,
	"vcgencmd_path":    "vcgencmd",
	"thermal_timeout":  "2s",
	"allowed_origins":  "",
	"log_level":        "info",
	"log_format":       "text",
}

// Load resolves configuration from the environment, an optional .env file and
// an optional config file. Environment variables always win.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// the mode comes from the command being run, never from the environment
	cfg := &Config{Mode: ModeServe}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.AllowedOrigins = splitList(v.GetString("allowed_origins"))
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the built-in configuration without consulting the environment.
func Default() *Config {
	return &Config{
		Address:         ":5000",
		Mode:            ModeServe,
		Interval:        time.Second,
		HistoryCapacity: 60,
		DiskMount:       "/",
		TopProcesses:    10,
		ProcessNameMax:  30,
		ThermalSource:   ThermalAuto,
		VcgencmdPath:    "vcgencmd",
		ThermalTimeout:  2 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func (c *Config) OriginAllowed(origin string) bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	out := []string{}
	for s := range strings.SplitSeq(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
