// Package verification ties the contribution check, the role connection update
// and the registry together, for both the interactive callback and the
// periodic re-check.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdg-garage/contrib-role-api/internal/auth"
	"github.com/gdg-garage/contrib-role-api/internal/models"
	"github.com/gdg-garage/contrib-role-api/internal/notifier"
	"github.com/gdg-garage/contrib-role-api/internal/registry"
	"golang.org/x/oauth2"
)

var ErrNoGitHubConnection = errors.New("verification: no verified GitHub connection")

type Checker interface {
	Check(ctx context.Context, username string, repos []models.Repository) models.ContributionResult
}

type RoleConnector interface {
	Update(ctx context.Context, accessToken, platformUsername string, result models.ContributionResult) error
}

type TokenRefresher interface {
	Refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error)
}

type Service struct {
	checker   Checker
	connector RoleConnector
	refresher TokenRefresher
	registry  registry.Registry
	notifier  notifier.Notifier
	repos     []models.Repository
	now       func() time.Time
}

// NewService wires the verification flow. refresher and notifier may be nil.
func NewService(checker Checker, connector RoleConnector, refresher TokenRefresher, reg registry.Registry, n notifier.Notifier, repos []models.Repository) *Service {
	return &Service{
		checker:   checker,
		connector: connector,
		refresher: refresher,
		registry:  reg,
		notifier:  n,
		repos:     repos,
		now:       time.Now,
	}
}

func (s *Service) Repositories() []models.Repository {
	return s.repos
}

// Verify checks the identity's GitHub account, pushes the result to Discord and
// records the user for later re-checks. The registry is only written after
// Discord accepted the update.
func (s *Service) Verify(ctx context.Context, identity *auth.Identity) (models.ContributionResult, error) {
	if identity.GitHub == nil {
		return models.ContributionResult{}, ErrNoGitHubConnection
	}
	username := identity.GitHub.Name
	log.Printf("Found GitHub: %s", username)

	result := s.checker.Check(ctx, username, s.repos)
	if result.Contributed {
		log.Printf("%s contributed to %s", username, result.Repo)
	} else {
		log.Printf("%s has no contributions to specified repositories", username)
	}

	record := models.Verification{
		DiscordID:       identity.User.ID,
		DiscordUsername: identity.User.Username,
		GitHubUsername:  username,
		Repositories:    models.RepositoryNames(s.repos),
	}
	if identity.Token != nil {
		record.AccessToken = identity.Token.AccessToken
		record.RefreshToken = identity.Token.RefreshToken
		record.TokenExpiry = identity.Token.Expiry
	}

	if err := s.connector.Update(ctx, record.AccessToken, record.PlatformUsername(), result); err != nil {
		return result, err
	}

	record.LastChecked = s.now()
	if err := s.registry.Save(ctx, record); err != nil {
		log.Printf("Failed to store verification for %s: %v", record.DiscordID, err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyVerified(record, result); err != nil {
			log.Printf("Failed to send notification: %v", err)
		}
	}

	return result, nil
}

// Recheck repeats the contribution check for a stored user against the
// currently configured repositories. On failure only a refreshed token is
// written back; the contribution state and LastChecked stay as they were.
func (s *Service) Recheck(ctx context.Context, record models.Verification) error {
	if s.refresher != nil && record.RefreshToken != "" {
		token, err := s.refresher.Refresh(ctx, &oauth2.Token{
			AccessToken:  record.AccessToken,
			RefreshToken: record.RefreshToken,
			Expiry:       record.TokenExpiry,
		})
		if err != nil {
			return err
		}
		record.AccessToken = token.AccessToken
		record.RefreshToken = token.RefreshToken
		record.TokenExpiry = token.Expiry

		// Discord rotates refresh tokens, so the new pair is stored before
		// anything else can fail. LastChecked is left as it was.
		if err := s.registry.Save(ctx, record); err != nil {
			return fmt.Errorf("verification: storing refreshed token for %s: %w", record.GitHubUsername, err)
		}
	}

	result := s.checker.Check(ctx, record.GitHubUsername, s.repos)

	if err := s.connector.Update(ctx, record.AccessToken, record.PlatformUsername(), result); err != nil {
		return fmt.Errorf("verification: re-checking %s: %w", record.GitHubUsername, err)
	}

	record.LastChecked = s.now()
	return s.registry.Save(ctx, record)
}
