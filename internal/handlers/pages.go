package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gdg-garage/contrib-role-api/internal/models"
)

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`
{{define "layout-start"}}<html>
  <head><title>Discord Linked Role - {{.Title}}</title></head>
  <body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">{{end}}
{{define "layout-end"}}
  </body>
</html>{{end}}

{{define "home"}}<h1>Repository Contributor Check</h1>
<p>This app verifies contributions to specified GitHub repositories using Discord's Linked Roles.</p>
<h3>Checked {{if eq (len .Repositories) 1}}Repository{{else}}Repositories{{end}}:</h3>
<ul>
{{range .Repositories}}  <li><strong>{{.}}</strong></li>
{{end}}</ul>
<p><em>You only need to have contributed to {{if eq (len .Repositories) 1}}this repository{{else}}ONE of these repositories{{end}} in the last 6 months.</em></p>
<a href="/auth">🔗 Verify Contributions</a>
{{end}}

{{define "success"}}{{template "layout-start" .}}
    <h2>✅ Success!</h2>
    <p><strong>{{.GitHubUsername}}</strong> has contributed to {{.Repo}}!</p>
    <p>Your Discord role has been updated. You can close this window.</p>
{{template "layout-end"}}{{end}}

{{define "no-contributions"}}{{template "layout-start" .}}
    <h2>❌ No contributions found</h2>
    <p>No contributions found for {{.GitHubUsername}} to {{join .Repositories " or "}} in the last 6 months.</p>
{{template "layout-end"}}{{end}}

{{define "connect-github"}}{{template "layout-start" .}}
    <h2>🔗 GitHub account not connected</h2>
    <p>We could not find a verified GitHub connection on your Discord account.</p>
    <p>Open Discord <strong>User Settings → Connections</strong>, add your GitHub account, then <a href="/auth">try again</a>.</p>
{{template "layout-end"}}{{end}}

{{define "error"}}{{template "layout-start" .}}
    <h2>❌ Error</h2>
    <p>{{.Message}}</p>
{{template "layout-end"}}{{end}}
`))

type pageData struct {
	Title          string
	GitHubUsername string
	Repo           string
	Repositories   []string
	Message        string
}

func render(w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Failed to render %s page: %v", name, err)
	}
}

type HomeHandler struct {
	repos []models.Repository
}

func NewHomeHandler(repos []models.Repository) *HomeHandler {
	return &HomeHandler{repos: repos}
}

func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "home", pageData{Repositories: models.RepositoryNames(h.repos)})
}
