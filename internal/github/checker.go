package github

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gdg-garage/contrib-role-api/internal/models"
	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

const (
	CommitsPerPage = 100
	MaxPages       = 20
	LookbackMonths = 6
)

// Checker looks for recent commits by a GitHub user in a list of repositories.
type Checker struct {
	client *gh.Client
	now    func() time.Time
}

// NewChecker returns a Checker using token for authentication. An empty token
// falls back to anonymous access, which GitHub rate limits heavily.
func NewChecker(token string) *Checker {
	if token == "" {
		return NewCheckerWithClient(gh.NewClient(nil))
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return NewCheckerWithClient(gh.NewClient(oauth2.NewClient(context.Background(), ts)))
}

func NewCheckerWithClient(client *gh.Client) *Checker {
	return &Checker{client: client, now: time.Now}
}

// Check returns the first repository, in list order, that has a commit authored
// or committed by username in the last six months. Lookup failures are logged
// and the repository is treated as having no match.
func (c *Checker) Check(ctx context.Context, username string, repos []models.Repository) models.ContributionResult {
	if username == "" {
		return models.ContributionResult{}
	}
	since := c.now().AddDate(0, -LookbackMonths, 0)

	for _, repo := range repos {
		if !repo.Valid() {
			continue
		}
		if c.contributedTo(ctx, username, repo, since) {
			matched := repo
			return models.ContributionResult{Contributed: true, Repo: &matched}
		}
	}

	return models.ContributionResult{}
}

func (c *Checker) contributedTo(ctx context.Context, username string, repo models.Repository, since time.Time) bool {
	opts := &gh.CommitsListOptions{
		Since:       since,
		ListOptions: gh.ListOptions{PerPage: CommitsPerPage},
	}

	for page := 1; page <= MaxPages; page++ {
		opts.Page = page
		commits, _, err := c.client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			log.Printf("Error checking %s: %v", repo, err)
			return false
		}

		for _, commit := range commits {
			if isAuthoredBy(commit, username) {
				return true
			}
		}

		if len(commits) < CommitsPerPage {
			return false
		}
	}

	return false
}

func isAuthoredBy(commit *gh.RepositoryCommit, username string) bool {
	return strings.EqualFold(commit.GetAuthor().GetLogin(), username) ||
		strings.EqualFold(commit.GetCommitter().GetLogin(), username)
}
