package review

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itc-club/club-applications/internal/errors"
	"github.com/itc-club/club-applications/internal/guard"
	"github.com/itc-club/club-applications/internal/store"
	"github.com/itc-club/club-applications/internal/types"
)

// Store is the append-only log of admin annotations. Reviews are owned by
// the admin workflow; the core only supplies the scores they build on.
type Store interface {
	Append(ctx context.Context, rec *types.ReviewRecord) error
	List(ctx context.Context) ([]types.ReviewRecord, error)
}

// FinalTotal blends the stored weighted total with the admin-entered
// scores: round(((total + skills) / 2) * 0.6 + motivation * 0.4, 2).
func FinalTotal(weightedTotal float64, motivation, skills int) float64 {
	v := ((weightedTotal+float64(skills))/2)*0.6 + float64(motivation)*0.4
	return math.Round(v*100) / 100
}

// Input is one admin review as entered in the dashboard.
type Input struct {
	AdminName       string `json:"admin_name"`
	CandidateEmail  string `json:"candidate_email"`
	MotivationScore int    `json:"motivation_score"`
	SkillsScore     int    `json:"skills_score"`
	Note            string `json:"note"`
}

// Service creates review records by joining admin input with the persisted
// application it annotates.
type Service struct {
	reviews Store
	records store.RecordStore
	now     func() time.Time
}

// NewService creates a review service.
func NewService(reviews Store, records store.RecordStore) *Service {
	return &Service{
		reviews: reviews,
		records: records,
		now:     time.Now,
	}
}

// Create validates the input, denormalizes the candidate's stored scores
// into the annotation and appends it to the review log.
func (s *Service) Create(ctx context.Context, in *Input) (*types.ReviewRecord, error) {
	if strings.TrimSpace(in.AdminName) == "" {
		return nil, errors.NewMissingFieldError("admin_name")
	}
	if strings.TrimSpace(in.CandidateEmail) == "" {
		return nil, errors.NewMissingFieldError("candidate_email")
	}
	if in.MotivationScore < 0 || in.MotivationScore > 100 {
		return nil, errors.NewValidationError("motivation score must be between 0 and 100")
	}
	if in.SkillsScore < 0 || in.SkillsScore > 100 {
		return nil, errors.NewValidationError("skills score must be between 0 and 100")
	}

	records, err := s.records.List(ctx)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("failed to read applications", err)
	}

	candidate := findByEmail(records, in.CandidateEmail)
	if candidate == nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("no application found for %q", in.CandidateEmail))
	}

	rec := &types.ReviewRecord{
		ID:              uuid.New().String(),
		AdminName:       strings.TrimSpace(in.AdminName),
		CandidateName:   candidate.Response.Name,
		TechScore:       candidate.TechScore,
		MediaScore:      candidate.MediaScore,
		SponsorScore:    candidate.SponsorScore,
		Ranking:         candidate.Response.Ranking,
		TotalScore:      candidate.TotalScore,
		MotivationScore: in.MotivationScore,
		SkillsScore:     in.SkillsScore,
		ComputedTotal:   FinalTotal(candidate.TotalScore, in.MotivationScore, in.SkillsScore),
		Note:            in.Note,
		CreatedAt:       s.now(),
	}

	if err := s.reviews.Append(ctx, rec); err != nil {
		return nil, errors.NewStoreUnavailableError("failed to save review", err)
	}
	return rec, nil
}

// List returns every review in the log.
func (s *Service) List(ctx context.Context) ([]types.ReviewRecord, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("failed to read reviews", err)
	}
	return reviews, nil
}

func findByEmail(records []types.Record, email string) *types.Record {
	want := guard.NormalizeEmail(email)
	for i := range records {
		if guard.NormalizeEmail(records[i].Response.Email) == want {
			return &records[i]
		}
	}
	return nil
}
