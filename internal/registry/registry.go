// Package registry stores the verification records that the re-check
// scheduler sweeps.
package registry

import (
	"context"

	"github.com/gdg-garage/contrib-role-api/internal/models"
)

type Registry interface {
	// Save inserts the record or overwrites the one with the same DiscordID,
	// keeping its original position.
	Save(ctx context.Context, v models.Verification) error
	// List returns all records in insertion order.
	List(ctx context.Context) ([]models.Verification, error)
	Count(ctx context.Context) (int64, error)
}
