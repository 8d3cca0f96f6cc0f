package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/born-ml/tfnp/backend/cpu"
	"github.com/born-ml/tfnp/tf"
)

// config is the CLI view of tf.Config.
type config struct {
	Log struct {
		Level  string
		Format string // "json" or "console"
	}
	Parallel struct {
		Enabled  bool
		Workers  int
		MinChunk int
	}
}

// loadConfig reads TFNP_* environment variables and an optional config
// file. With an empty path, ./tfnp.yaml is used when present.
func loadConfig(path string) (*config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("tfnp")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("tfnp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Parallel.Enabled = v.GetBool("parallel.enabled")
	cfg.Parallel.Workers = v.GetInt("parallel.workers")
	cfg.Parallel.MinChunk = v.GetInt("parallel.min_chunk")

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	def := cpu.DefaultConfig().Parallel
	v.SetDefault("parallel.enabled", def.Enabled)
	v.SetDefault("parallel.workers", def.NumWorkers)
	v.SetDefault("parallel.min_chunk", def.MinChunkSize)
}

func validate(cfg *config) error {
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", cfg.Log.Format)
	}
	if cfg.Parallel.Workers < 1 {
		return fmt.Errorf("parallel.workers must be positive, got %d", cfg.Parallel.Workers)
	}
	return nil
}

func (c *config) logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	var zc zap.Config
	if c.Log.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func (c *config) tf(logger *zap.Logger) tf.Config {
	cfg := tf.DefaultConfig()
	cfg.Logger = logger
	cfg.Backend.Parallel = cpu.ParallelOptions{
		Enabled:      c.Parallel.Enabled,
		NumWorkers:   c.Parallel.Workers,
		MinChunkSize: c.Parallel.MinChunk,
	}
	return cfg
}
