package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode           string        `mapstructure:"mode"`
	DiscordToken   string        `mapstructure:"discord_token"`
	Channels       []string      `mapstructure:"channels"`
	APIBaseURL     string        `mapstructure:"api_base_url"`
	StreamURL      string        `mapstructure:"stream_url"`
	SiteBaseURL    string        `mapstructure:"site_base_url"`
	ResyncInterval time.Duration `mapstructure:"resync_interval"`
	CountInterval  time.Duration `mapstructure:"count_interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	StatusPort     int           `mapstructure:"status_port"`
}

// Load reads config/config.<CONFIG_ENV>.yaml and overlays LOBBYWATCH_*
// environment variables. CONFIG_ENV defaults to "dev".
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	v.SetDefault("mode", "release")
	v.SetDefault("discord_token", "")
	v.SetDefault("channels", []string{})
	v.SetDefault("api_base_url", "https://api.mgo1.savemgo.com/api/v1")
	v.SetDefault("stream_url", "wss://api.mgo1.savemgo.com/api/v1/stream/events")
	v.SetDefault("site_base_url", "https://mgo1.savemgo.com")
	v.SetDefault("resync_interval", "5m")
	v.SetDefault("count_interval", "10m")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("status_port", 8080)

	v.SetEnvPrefix("LOBBYWATCH")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults and env")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DiscordToken == "" {
		return nil, errors.New("discord_token is required")
	}
	if len(cfg.Channels) == 0 {
		return nil, errors.New("at least one channel id is required")
	}
	return &cfg, nil
}
