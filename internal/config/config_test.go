package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DISCORD_CLIENT_ID", "client-id")
	t.Setenv("DISCORD_CLIENT_SECRET", "client-secret")
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequired(t)
		t.Setenv("REPOSITORIES", "org/r1,org/r2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.Port != "3000" {
			t.Errorf("expected port 3000, got %s", cfg.Port)
		}
		if cfg.RecheckInterval != 24*time.Hour {
			t.Errorf("expected 24h interval, got %v", cfg.RecheckInterval)
		}
		if cfg.StaleAfter != 30*24*time.Hour {
			t.Errorf("expected 30 day staleness, got %v", cfg.StaleAfter)
		}
		if cfg.RecheckDelay != 2*time.Second {
			t.Errorf("expected 2s delay, got %v", cfg.RecheckDelay)
		}
		if cfg.StateSecret != "client-secret" {
			t.Errorf("expected state secret to fall back to client secret, got %q", cfg.StateSecret)
		}
		if len(cfg.Repositories) != 2 || cfg.Repositories[0] != "org/r1" || cfg.Repositories[1] != "org/r2" {
			t.Errorf("unexpected repositories %v", cfg.Repositories)
		}
	})

	t.Run("LegacyNames", func(t *testing.T) {
		t.Setenv("CLIENT_ID", "legacy-id")
		t.Setenv("CLIENT_SECRET", "legacy-secret")
		t.Setenv("REDIRECT_URI", "https://example.com/linked-role")
		t.Setenv("DISCORD_TOKEN", "bot-token")
		t.Setenv("REPO_1", "dotnet/aspire")
		t.Setenv("REPO_2", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.DiscordClientID != "legacy-id" {
			t.Errorf("expected legacy client id, got %q", cfg.DiscordClientID)
		}
		if cfg.DiscordRedirectURL != "https://example.com/linked-role" {
			t.Errorf("unexpected redirect %q", cfg.DiscordRedirectURL)
		}
		if cfg.DiscordBotToken != "bot-token" {
			t.Errorf("unexpected bot token %q", cfg.DiscordBotToken)
		}
		if len(cfg.Repositories) != 1 || cfg.Repositories[0] != "dotnet/aspire" {
			t.Errorf("unexpected repositories %v", cfg.Repositories)
		}
	})

	t.Run("RepoVariablesAppendWithoutDuplicates", func(t *testing.T) {
		setRequired(t)
		t.Setenv("REPOSITORIES", "org/r1")
		t.Setenv("REPO_1", "org/r1")
		t.Setenv("REPO_2", "org/r3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		repos := cfg.Repos()
		if len(repos) != 2 || repos[1].String() != "org/r3" {
			t.Errorf("unexpected repositories %v", cfg.Repositories)
		}
	})

	t.Run("NoRepositories", func(t *testing.T) {
		setRequired(t)
		if _, err := Load(); err == nil {
			t.Fatal("expected error without repositories, got nil")
		}
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		t.Setenv("REPOSITORIES", "org/r1")
		if _, err := Load(); err == nil {
			t.Fatal("expected error without client credentials, got nil")
		}
	})
}
