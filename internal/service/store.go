package service

import (
	"context"

	"github.com/parisxmas/sitesurvey/internal/models"
)

// ResponseStore is the persistence the services need. repository.SheetRepo
// implements it.
type ResponseStore interface {
	Load(ctx context.Context) *models.Table
	Append(ctx context.Context, rec models.Record) error
	List(ctx context.Context, skip, limit int) ([]models.Record, int)
}
