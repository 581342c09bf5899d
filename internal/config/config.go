package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdg-garage/contrib-role-api/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT" validate:"required"`
	DatabasePath                  string        `mapstructure:"DATABASE_PATH"`
	DiscordClientID               string        `mapstructure:"DISCORD_CLIENT_ID" validate:"required"`
	DiscordClientSecret           string        `mapstructure:"DISCORD_CLIENT_SECRET" validate:"required"`
	DiscordRedirectURL            string        `mapstructure:"DISCORD_REDIRECT_URL" validate:"required,url"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	GitHubToken                   string        `mapstructure:"GITHUB_TOKEN"`
	StateSecret                   string        `mapstructure:"STATE_SECRET"`
	Repositories                  []string      `mapstructure:"REPOSITORIES" validate:"min=1,dive,required"`
	Repo1                         string        `mapstructure:"REPO_1"`
	Repo2                         string        `mapstructure:"REPO_2"`
	RecheckInterval               time.Duration `mapstructure:"RECHECK_INTERVAL" validate:"gt=0"`
	StaleAfter                    time.Duration `mapstructure:"STALE_AFTER" validate:"gt=0"`
	RecheckDelay                  time.Duration `mapstructure:"RECHECK_DELAY" validate:"gte=0"`
}

// Repos returns the configured repositories in check order.
func (c *Config) Repos() []models.Repository {
	return models.ParseRepositories(c.Repositories)
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "3000")
	v.SetDefault("DISCORD_REDIRECT_URL", "http://localhost:3000/linked-role")
	v.SetDefault("RECHECK_INTERVAL", 24*time.Hour)
	v.SetDefault("STALE_AFTER", 30*24*time.Hour)
	v.SetDefault("RECHECK_DELAY", 2*time.Second)

	// Older deployments used the unprefixed names.
	v.BindEnv("DISCORD_CLIENT_ID", "DISCORD_CLIENT_ID", "CLIENT_ID")
	v.BindEnv("DISCORD_CLIENT_SECRET", "DISCORD_CLIENT_SECRET", "CLIENT_SECRET")
	v.BindEnv("DISCORD_REDIRECT_URL", "DISCORD_REDIRECT_URL", "REDIRECT_URI")
	v.BindEnv("DISCORD_BOT_TOKEN", "DISCORD_BOT_TOKEN", "DISCORD_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	v.BindEnv("DATABASE_PATH")
	v.BindEnv("GITHUB_TOKEN")
	v.BindEnv("STATE_SECRET")
	v.BindEnv("REPOSITORIES")
	v.BindEnv("REPO_1")
	v.BindEnv("REPO_2")
	v.BindEnv("RECHECK_INTERVAL")
	v.BindEnv("STALE_AFTER")
	v.BindEnv("RECHECK_DELAY")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}

	cfg.Repositories = mergeRepositories(cfg.Repositories, cfg.Repo1, cfg.Repo2)
	if cfg.StateSecret == "" {
		cfg.StateSecret = cfg.DiscordClientSecret
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// LoadConfig is Load for process startup: the service cannot run without a
// repository list or Discord credentials.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func mergeRepositories(list []string, extra ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, ref := range append(list, extra...) {
		ref = strings.TrimSpace(ref)
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		out = append(out, ref)
	}
	return out
}
