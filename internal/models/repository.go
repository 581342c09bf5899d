package models

import "strings"

// Repository is a GitHub repository reference in owner/name form.
type Repository struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// ParseRepository splits an "owner/name" reference. Segments after the second
// are ignored; a missing segment leaves the field empty.
func ParseRepository(ref string) Repository {
	parts := strings.Split(strings.TrimSpace(ref), "/")
	repo := Repository{Owner: parts[0]}
	if len(parts) > 1 {
		repo.Name = parts[1]
	}
	return repo
}

func ParseRepositories(refs []string) []Repository {
	repos := make([]Repository, 0, len(refs))
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		repos = append(repos, ParseRepository(ref))
	}
	return repos
}

func (r Repository) Valid() bool {
	return r.Owner != "" && r.Name != ""
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// RepositoryNames renders repos back into owner/name strings.
func RepositoryNames(repos []Repository) []string {
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.String()
	}
	return names
}

type ContributionResult struct {
	Contributed bool
	Repo        *Repository
}
