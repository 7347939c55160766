package guard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/itc-club/club-applications/internal/errors"
	"github.com/itc-club/club-applications/internal/resilience"
	"github.com/itc-club/club-applications/internal/store"
	"github.com/itc-club/club-applications/internal/types"
)

// Service runs the full submission step: deadline check, structural
// validation against the existing record set, scoring and the append to
// the record store.
//
// Listing existing records and appending the new one are two separate
// store calls with no shared lock, so two concurrent submissions with the
// same email can both pass the duplicate check. The append-only store
// offers no check-and-set primitive, so this race is accepted rather than
// papered over; the duplicate check still blocks every sequential resubmit.
type Service struct {
	store    store.RecordStore
	deadline time.Time
	now      func() time.Time
}

// NewService creates a submission service. A zero deadline means
// submissions never close.
func NewService(recordStore store.RecordStore, deadline time.Time) *Service {
	return &Service{
		store:    recordStore,
		deadline: deadline,
		now:      time.Now,
	}
}

// Submit validates, scores and persists one candidate response. On
// success the returned record carries the computed domain scores, the
// weighted total and the submission timestamp.
func (s *Service) Submit(ctx context.Context, candidate *types.ApplicantResponse) (*types.Record, error) {
	if !s.deadline.IsZero() && s.now().After(s.deadline) {
		return nil, errors.NewSubmissionsClosedError(s.deadline)
	}

	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("failed to read existing applications", err)
	}

	admitted, err := Admit(candidate, existing)
	if err != nil {
		return nil, err
	}

	rec := &types.Record{
		ID:           uuid.New().String(),
		Response:     admitted.Response,
		TechScore:    admitted.Scores[types.DomainTech],
		MediaScore:   admitted.Scores[types.DomainMedia],
		SponsorScore: admitted.Scores[types.DomainSponsoring],
		TotalScore:   admitted.Total,
		SubmittedAt:  s.now(),
	}

	err = resilience.Retry(ctx, func() error {
		return s.store.Append(ctx, rec)
	})
	if err != nil {
		return nil, errors.NewStoreUnavailableError("failed to save application", err)
	}

	slog.Info("Application admitted",
		"record_id", rec.ID,
		"first_choice", string(rec.Response.Ranking[0]),
		"tech_score", rec.TechScore,
		"media_score", rec.MediaScore,
		"sponsor_score", rec.SponsorScore,
		"total_score", rec.TotalScore,
	)

	return rec, nil
}
