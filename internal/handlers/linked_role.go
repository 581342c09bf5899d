package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gdg-garage/contrib-role-api/internal/auth"
	"github.com/gdg-garage/contrib-role-api/internal/models"
)

type Authenticator interface {
	CheckState(r *http.Request) error
	Exchange(ctx context.Context, code string) (*auth.Identity, error)
}

type Verifier interface {
	Verify(ctx context.Context, identity *auth.Identity) (models.ContributionResult, error)
	Repositories() []models.Repository
}

type LinkedRoleHandler struct {
	auth     Authenticator
	verifier Verifier
}

func NewLinkedRoleHandler(authenticator Authenticator, verifier Verifier) *LinkedRoleHandler {
	return &LinkedRoleHandler{auth: authenticator, verifier: verifier}
}

// HandleCallback completes the OAuth flow and updates the user's linked role.
func (h *LinkedRoleHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	log.Printf("Linked role callback triggered")

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Invalid authorization code.", http.StatusBadRequest)
		return
	}

	if err := h.auth.CheckState(r); err != nil {
		http.Error(w, "Invalid OAuth state. Please start again from /auth.", http.StatusBadRequest)
		return
	}

	identity, err := h.auth.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("OAuth2 error: %v", err)
		if errors.Is(err, auth.ErrTokenExchange) {
			http.Error(w, "Failed to authenticate with Discord.", http.StatusUnauthorized)
			return
		}
		render(w, http.StatusBadGateway, "error", pageData{Title: "Error", Message: "An error occurred during verification."})
		return
	}

	if identity.GitHub == nil {
		log.Printf("No verified GitHub connection found for %s", identity.User.ID)
		render(w, http.StatusOK, "connect-github", pageData{Title: "Connect GitHub"})
		return
	}

	result, err := h.verifier.Verify(r.Context(), identity)
	if err != nil {
		log.Printf("Failed to update role connection for %s: %v", identity.User.ID, err)
		render(w, http.StatusBadGateway, "error", pageData{Title: "Error", Message: "Failed to update role connection."})
		return
	}

	repos := models.RepositoryNames(h.verifier.Repositories())
	if result.Contributed {
		render(w, http.StatusOK, "success", pageData{
			Title:          "Success",
			GitHubUsername: identity.GitHub.Name,
			Repo:           result.Repo.String(),
		})
		return
	}

	render(w, http.StatusOK, "no-contributions", pageData{
		Title:          "No Contributions",
		GitHubUsername: identity.GitHub.Name,
		Repositories:   repos,
	})
}
