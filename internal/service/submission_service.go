package service

import (
	"context"

	"github.com/parisxmas/sitesurvey/internal/models"
	"go.uber.org/zap"
)

const (
	MsgSubmitted = "Response recorded! Thank you for your participation."
	MsgRequired  = "Please fill in all required fields."
	MsgInvalid   = "Some fields are too long or contain unsupported characters."
)

// RejectionMessage picks the user-facing message for a validation failure.
// Missing required fields take precedence.
func RejectionMessage(verr *models.ValidationError) string {
	if len(verr.Fields) == 0 && len(verr.Invalid) > 0 {
		return MsgInvalid
	}
	return MsgRequired
}

type SubmissionService struct {
	store ResponseStore
	log   *zap.Logger
}

func NewSubmissionService(store ResponseStore, log *zap.Logger) *SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{store: store, log: log.Named("submissions")}
}

// Submit validates rec and appends it to the store. A *models.ValidationError
// leaves the store untouched; write failures are returned as they come and
// are not retried.
func (s *SubmissionService) Submit(ctx context.Context, rec models.Record) error {
	if err := models.Validate(rec); err != nil {
		s.log.Debug("submission rejected", zap.Error(err))
		return err
	}
	return s.store.Append(ctx, rec)
}

func (s *SubmissionService) List(ctx context.Context, skip, limit int) ([]models.Record, int) {
	return s.store.List(ctx, skip, limit)
}
