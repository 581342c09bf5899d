package discord

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/contrib-role-api/internal/models"
)

const (
	MetadataKey         = "contributed_to_repos"
	MetadataName        = "Repository Contributor"
	DefaultPlatformName = "Repository Contributor Check"
)

// RoleConnector pushes linked role metadata for the application identified by appID.
type RoleConnector struct {
	appID      string
	httpClient *http.Client
}

func NewRoleConnector(appID string) *RoleConnector {
	return &RoleConnector{appID: appID}
}

// PlatformName is the label Discord shows on the user's role connection.
func PlatformName(result models.ContributionResult) string {
	if result.Repo != nil {
		return result.Repo.String() + " Contributor"
	}
	return DefaultPlatformName
}

// Update sets the contribution metadata on the role connection of the user
// that owns accessToken.
func (c *RoleConnector) Update(ctx context.Context, accessToken, platformUsername string, result models.ContributionResult) error {
	session, err := c.session(ctx, "Bearer "+accessToken)
	if err != nil {
		return err
	}

	value := "0"
	if result.Contributed {
		value = "1"
	}

	_, err = session.UserApplicationRoleConnectionUpdate(c.appID, &discordgo.ApplicationRoleConnection{
		PlatformName:     PlatformName(result),
		PlatformUsername: platformUsername,
		Metadata:         map[string]string{MetadataKey: value},
	})
	if err != nil {
		return fmt.Errorf("discord: updating role connection: %w", err)
	}
	return nil
}

// RegisterMetadata declares the boolean contribution field for the
// application's linked roles. It must be called with a bot session; ctx is
// only checked before the request since the session is shared.
func (c *RoleConnector) RegisterMetadata(ctx context.Context, session *discordgo.Session, repos []models.Repository) error {
	metadata := []*discordgo.ApplicationRoleConnectionMetadata{
		{
			Type:        discordgo.ApplicationRoleConnectionMetadataBooleanEqual,
			Key:         MetadataKey,
			Name:        MetadataName,
			Description: fmt.Sprintf("Has contributed to %s in the last 6 months", strings.Join(models.RepositoryNames(repos), " or ")),
		},
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("discord: registering role connection metadata: %w", err)
	}
	if _, err := session.ApplicationRoleConnectionMetadataUpdate(c.appID, metadata); err != nil {
		return fmt.Errorf("discord: registering role connection metadata: %w", err)
	}
	return nil
}

// session returns a one-off session whose requests are bound to ctx.
func (c *RoleConnector) session(ctx context.Context, token string) (*discordgo.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discord: creating session: %w", err)
	}
	session, err := discordgo.New(token)
	if err != nil {
		return nil, fmt.Errorf("discord: creating session: %w", err)
	}

	client := session.Client
	if c.httpClient != nil {
		client = c.httpClient
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	session.Client = &http.Client{
		Transport: contextTransport{ctx: ctx, base: base},
		Timeout:   client.Timeout,
	}
	return session, nil
}

// contextTransport attaches ctx to every request, since discordgo's role
// connection calls take no request options.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}
