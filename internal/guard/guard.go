package guard

import (
	"strings"

	"github.com/itc-club/club-applications/internal/errors"
	"github.com/itc-club/club-applications/internal/scoring"
	"github.com/itc-club/club-applications/internal/types"
)

// Admitted is a candidate response that passed every structural check,
// carrying the computed domain scores and the weighted total, ready to be
// appended to the record store.
type Admitted struct {
	Response types.ApplicantResponse
	Scores   map[types.Domain]int
	Total    float64
}

// requiredFields are the form fields that must be non-empty after trimming.
var requiredFields = []struct {
	name  string
	value func(*types.ApplicantResponse) string
}{
	{"name", func(r *types.ApplicantResponse) string { return r.Name }},
	{"email", func(r *types.ApplicantResponse) string { return r.Email }},
	{"why_join", func(r *types.ApplicantResponse) string { return r.WhyJoin }},
	{"motivation", func(r *types.ApplicantResponse) string { return r.Motivation }},
}

// Admit validates a candidate response against the structural constraints
// and the existing record set, in order, short-circuiting on the first
// failure: required fields, domain-ranking well-formedness, then the
// duplicate-email check. On success it invokes the scoring engine and
// returns the admitted result.
//
// Admit is pure with respect to its inputs; fetching the existing records
// and appending the admitted one belong to Service.
func Admit(candidate *types.ApplicantResponse, existing []types.Record) (*Admitted, error) {
	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(candidate)) == "" {
			return nil, errors.NewMissingFieldError(f.name)
		}
	}

	if !candidate.Ranking.IsValid() {
		return nil, errors.NewInvalidRankingError(
			"domain ranking must contain each of Tech, Media and Sponsoring exactly once")
	}

	email := NormalizeEmail(candidate.Email)
	for i := range existing {
		if NormalizeEmail(existing[i].Response.Email) == email {
			return nil, errors.NewDuplicateEmailError(candidate.Email)
		}
	}

	scores := scoring.ScoreAll(candidate)
	return &Admitted{
		Response: *candidate,
		Scores:   scores,
		Total:    scoring.WeightedTotal(scores, candidate.Ranking),
	}, nil
}

// NormalizeEmail trims whitespace and lowercases an email for comparison.
// The duplicate check is keyed solely on this normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
