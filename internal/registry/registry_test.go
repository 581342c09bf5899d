package registry

import (
	"context"
	"testing"
	"time"

	"github.com/gdg-garage/contrib-role-api/internal/database"
	"github.com/gdg-garage/contrib-role-api/internal/models"
)

func newGormRegistry(t *testing.T) *GormRegistry {
	t.Helper()
	return NewGormRegistry(database.Connect(":memory:"))
}

func TestRegistries(t *testing.T) {
	implementations := map[string]func(t *testing.T) Registry{
		"Memory": func(t *testing.T) Registry { return NewMemoryRegistry() },
		"Gorm":   func(t *testing.T) Registry { return newGormRegistry(t) },
	}

	for name, newRegistry := range implementations {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			reg := newRegistry(t)

			first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			records := []models.Verification{
				{DiscordID: "3", GitHubUsername: "carol", AccessToken: "t3", LastChecked: first, Repositories: []string{"org/r1"}},
				{DiscordID: "1", GitHubUsername: "alice", AccessToken: "t1", LastChecked: first, Repositories: []string{"org/r1", "org/r2"}},
				{DiscordID: "2", GitHubUsername: "bob", AccessToken: "t2", LastChecked: first},
			}
			for _, r := range records {
				if err := reg.Save(ctx, r); err != nil {
					t.Fatalf("Save returned error: %v", err)
				}
			}

			// Overwrite keeps position and replaces fields.
			later := first.Add(30 * 24 * time.Hour)
			if err := reg.Save(ctx, models.Verification{
				DiscordID:      "1",
				GitHubUsername: "alice",
				AccessToken:    "t1-new",
				LastChecked:    later,
				Repositories:   []string{"org/r1", "org/r2"},
			}); err != nil {
				t.Fatalf("Save (overwrite) returned error: %v", err)
			}

			count, err := reg.Count(ctx)
			if err != nil {
				t.Fatalf("Count returned error: %v", err)
			}
			if count != 3 {
				t.Errorf("expected 3 records, got %d", count)
			}

			list, err := reg.List(ctx)
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if len(list) != 3 {
				t.Fatalf("expected 3 records, got %d", len(list))
			}
			order := []string{list[0].DiscordID, list[1].DiscordID, list[2].DiscordID}
			if order[0] != "3" || order[1] != "1" || order[2] != "2" {
				t.Errorf("expected insertion order [3 1 2], got %v", order)
			}

			alice := list[1]
			if alice.AccessToken != "t1-new" {
				t.Errorf("expected overwritten token, got %q", alice.AccessToken)
			}
			if !alice.LastChecked.Equal(later) {
				t.Errorf("expected last checked %v, got %v", later, alice.LastChecked)
			}
			if len(alice.Repositories) != 2 || alice.Repositories[1] != "org/r2" {
				t.Errorf("unexpected repositories %v", alice.Repositories)
			}
		})
	}
}

func TestMemoryRegistryCopiesRepositories(t *testing.T) {
	reg := NewMemoryRegistry()
	repos := []string{"org/r1"}
	reg.Save(context.Background(), models.Verification{DiscordID: "1", Repositories: repos})

	repos[0] = "mutated/repo"

	list, _ := reg.List(context.Background())
	if list[0].Repositories[0] != "org/r1" {
		t.Errorf("expected stored snapshot to be unaffected, got %v", list[0].Repositories)
	}
}
