// Package config loads gradewise settings from a YAML file, GRADEWISE_*
// environment variables and built-in defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/gradewise/internal/impact"
	"github.com/abhisek/gradewise/internal/spacedrep"
)

// EnvPrefix prefixes every environment override, e.g. GRADEWISE_LOG_LEVEL.
const EnvPrefix = "GRADEWISE"

// Config is the top-level configuration.
type Config struct {
	// DB is the SQLite database path. Empty means store.DefaultDBPath.
	DB string `mapstructure:"db"`

	Log       LogConfig          `mapstructure:"log"`
	Targets   map[string]float64 `mapstructure:"targets" validate:"required,dive,keys,required,endkeys,gt=0,lte=200"`
	Impact    ImpactConfig       `mapstructure:"impact"`
	Scheduler SchedulerConfig    `mapstructure:"scheduler"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	// File enables a rotating JSON log file in addition to stderr.
	File string `mapstructure:"file"`
}

// ImpactConfig controls the assignment impact calculator.
type ImpactConfig struct {
	Workers int `mapstructure:"workers" validate:"gte=0,lte=256"`
}

// SchedulerConfig controls new flashcards.
type SchedulerConfig struct {
	InitialEase float64 `mapstructure:"initial_ease" validate:"gte=1.3,lte=5"`
}

// Default returns the built-in configuration.
func Default() Config {
	targets := make(map[string]float64)
	for _, t := range impact.DefaultTargets() {
		targets[strings.ToLower(string(t.Letter))] = t.Percent
	}
	return Config{
		Log:       LogConfig{Level: "warn"},
		Targets:   targets,
		Scheduler: SchedulerConfig{InitialEase: spacedrep.DefaultEaseFactor},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("db", d.DB)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("targets", d.Targets)
	v.SetDefault("impact.workers", d.Impact.Workers)
	v.SetDefault("scheduler.initial_ease", d.Scheduler.InitialEase)
}

// Load reads the configuration. When path is empty the default location
// ($XDG_CONFIG_HOME/gradewise/config.yaml) is tried and a missing file is not
// an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := defaultDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// if the file exists. Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ImpactCalculatorConfig converts the configured targets into an impact.Config.
// Letters are upper-cased since viper lower-cases map keys.
func (c Config) ImpactCalculatorConfig() impact.Config {
	cfg := impact.Config{Workers: c.Impact.Workers}
	for letter, pct := range c.Targets {
		cfg.Targets = append(cfg.Targets, impact.Target{
			Letter:  impact.Letter(strings.ToUpper(letter)),
			Percent: pct,
		})
	}
	return cfg
}

func defaultDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gradewise"), nil
}
