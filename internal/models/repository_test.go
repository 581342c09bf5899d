package models

import "testing"

func TestParseRepository(t *testing.T) {
	tests := []struct {
		ref   string
		want  Repository
		valid bool
	}{
		{"dotnet/aspire", Repository{"dotnet", "aspire"}, true},
		{" org/r1 ", Repository{"org", "r1"}, true},
		{"org/r1/extra", Repository{"org", "r1"}, true},
		{"org", Repository{Owner: "org"}, false},
		{"/name", Repository{Name: "name"}, false},
		{"org/", Repository{Owner: "org"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got := ParseRepository(tt.ref)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
			if got.Valid() != tt.valid {
				t.Errorf("expected valid=%v, got %v", tt.valid, got.Valid())
			}
		})
	}
}

func TestParseRepositoriesSkipsBlank(t *testing.T) {
	repos := ParseRepositories([]string{"org/r1", "", "  ", "org/r2"})
	if len(repos) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(repos))
	}
	names := RepositoryNames(repos)
	if names[0] != "org/r1" || names[1] != "org/r2" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestPlatformUsernameFallback(t *testing.T) {
	v := Verification{DiscordUsername: "discord-alice"}
	if got := v.PlatformUsername(); got != "discord-alice" {
		t.Errorf("expected discord fallback, got %s", got)
	}
	v.GitHubUsername = "alice"
	if got := v.PlatformUsername(); got != "alice" {
		t.Errorf("expected github username, got %s", got)
	}
}
