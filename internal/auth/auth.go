package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gdg-garage/contrib-role-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	DiscordAuthorizeEndpoint = "https://discord.com/api/oauth2/authorize"
	DiscordTokenEndpoint     = "https://discord.com/api/oauth2/token"
	DiscordAPI               = "https://discord.com/api/v10"

	StateCookie   = "oauth_state"
	StateDuration = 10 * time.Minute
)

var (
	ErrTokenExchange = errors.New("auth: token exchange failed")
	ErrInvalidState  = errors.New("auth: invalid state")
)

// DiscordUser is the part of /users/@me the verification flow needs.
type DiscordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Connection is a third-party account linked to a Discord user.
type Connection struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// Identity is the result of a completed OAuth exchange. GitHub is nil when the
// user has no verified GitHub connection.
type Identity struct {
	Token  *oauth2.Token
	User   DiscordUser
	GitHub *Connection
}

type AuthHandler struct {
	oauthConfig *oauth2.Config
	apiBase     string
	stateSecret []byte
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
			Scopes:       []string{"role_connections.write", "identify", "connections"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   DiscordAuthorizeEndpoint,
				TokenURL:  DiscordTokenEndpoint,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBase:     DiscordAPI,
		stateSecret: []byte(cfg.StateSecret),
	}
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := h.GenerateState()
	if err != nil {
		http.Error(w, "Failed to start authentication", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    state,
		Expires:  time.Now().Add(StateDuration),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	url := h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusFound)
}

// GenerateState returns a short-lived signed token used as the OAuth state.
func (h *AuthHandler) GenerateState() (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        hex.EncodeToString(nonce),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(StateDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.stateSecret)
}

// CheckState verifies that the callback carries the state issued to this
// browser by HandleLogin.
func (h *AuthHandler) CheckState(r *http.Request) error {
	state := r.URL.Query().Get("state")
	if state == "" {
		return ErrInvalidState
	}
	cookie, err := r.Cookie(StateCookie)
	if err != nil || cookie.Value != state {
		return ErrInvalidState
	}

	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return h.stateSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ErrInvalidState
	}
	return nil
}

// Exchange trades the authorization code for a token and resolves the user's
// profile and verified GitHub connection.
func (h *AuthHandler) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}

	client := h.oauthConfig.Client(ctx, token)

	var user DiscordUser
	if err := getJSON(ctx, client, h.apiBase+"/users/@me", &user); err != nil {
		return nil, fmt.Errorf("auth: fetching user: %w", err)
	}

	var connections []Connection
	if err := getJSON(ctx, client, h.apiBase+"/users/@me/connections", &connections); err != nil {
		return nil, fmt.Errorf("auth: fetching connections: %w", err)
	}

	identity := &Identity{Token: token, User: user}
	for _, c := range connections {
		if c.Type == "github" && c.Verified {
			conn := c
			identity.GitHub = &conn
			break
		}
	}

	return identity, nil
}

// Refresh returns a valid token for tok, using its refresh token when it has
// expired.
func (h *AuthHandler) Refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	fresh, err := h.oauthConfig.TokenSource(ctx, tok).Token()
	if err != nil {
		return nil, fmt.Errorf("auth: refreshing token: %w", err)
	}
	return fresh, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
