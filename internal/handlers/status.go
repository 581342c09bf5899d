package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/contrib-role-api/internal/github"
	"github.com/gdg-garage/contrib-role-api/internal/models"
	"github.com/gdg-garage/contrib-role-api/internal/registry"
)

type SweepReporter interface {
	LastSweep() time.Time
}

type StatusHandler struct {
	registry registry.Registry
	repos    []models.Repository
	sweeps   SweepReporter
}

func NewStatusHandler(reg registry.Registry, repos []models.Repository, sweeps SweepReporter) *StatusHandler {
	return &StatusHandler{registry: reg, repos: repos, sweeps: sweeps}
}

type RepositoriesResponse struct {
	Body struct {
		Repositories   []string `json:"repositories" doc:"Repositories checked, in priority order"`
		LookbackMonths int      `json:"lookback_months" doc:"Commits older than this are ignored"`
	}
}

func (h *StatusHandler) HandleRepositories(ctx context.Context, input *struct{}) (*RepositoriesResponse, error) {
	res := &RepositoriesResponse{}
	res.Body.Repositories = models.RepositoryNames(h.repos)
	res.Body.LookbackMonths = github.LookbackMonths
	return res, nil
}

type StatusResponse struct {
	Body struct {
		Registered int64      `json:"registered" doc:"Users scheduled for periodic re-checks"`
		LastSweep  *time.Time `json:"last_sweep,omitempty" doc:"When the last periodic re-check finished"`
	}
}

func (h *StatusHandler) HandleStatus(ctx context.Context, input *struct{}) (*StatusResponse, error) {
	count, err := h.registry.Count(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to read registry: " + err.Error())
	}

	res := &StatusResponse{}
	res.Body.Registered = count
	if h.sweeps != nil {
		if last := h.sweeps.LastSweep(); !last.IsZero() {
			res.Body.LastSweep = &last
		}
	}
	return res, nil
}
