// Package config provides configuration management functionality.
//
// Values come, by decreasing priority, from CARTERA_* environment variables (a .env
// file in the working directory is loaded first), from a cartera.yaml file, and from
// the defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/etnz/cartera/date"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Keys of the configuration.
const (
	KeyDataDir       = "data_dir"
	KeyAddr          = "addr"
	KeyLogLevel      = "log_level"
	KeyLogPretty     = "log_pretty"
	KeyIndexSchedule = "index_schedule"
	KeyIndexFrom     = "index_from"
	KeyCacheSize     = "cache_size"
)

// Config holds application configuration
type Config struct {
	DataDir       string    // directory of the JSON snapshots
	Addr          string    // listen address of the web server
	LogLevel      string    // zerolog level name
	LogPretty     bool      // human readable logs instead of JSON
	IndexSchedule string    // cron schedule of the index refresh, empty to disable it
	IndexFrom     date.Date // first day of the index download
	CacheSize     int       // number of decoded snapshots kept in memory
}

// Load reads the configuration. An empty file looks for an optional cartera.yaml in
// the working directory and in $HOME/.config/cartera.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env")
	}

	v := viper.New()
	v.SetDefault(KeyDataDir, "public/data")
	v.SetDefault(KeyAddr, ":3000")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogPretty, true)
	v.SetDefault(KeyIndexSchedule, "")
	v.SetDefault(KeyIndexFrom, "2010-01-01")
	v.SetDefault(KeyCacheSize, 64)

	v.SetEnvPrefix("cartera")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config %q: %w", file, err)
		}
	} else {
		v.SetConfigName("cartera")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/cartera")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("could not read config: %w", err)
			}
		}
	}

	from, err := date.Parse(v.GetString(KeyIndexFrom))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyIndexFrom, err)
	}

	return &Config{
		DataDir:       v.GetString(KeyDataDir),
		Addr:          v.GetString(KeyAddr),
		LogLevel:      v.GetString(KeyLogLevel),
		LogPretty:     v.GetBool(KeyLogPretty),
		IndexSchedule: v.GetString(KeyIndexSchedule),
		IndexFrom:     from,
		CacheSize:     v.GetInt(KeyCacheSize),
	}, nil
}
