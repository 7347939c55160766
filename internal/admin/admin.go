package admin

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/itc-club/club-applications/internal/errors"
	"github.com/itc-club/club-applications/internal/store"
	"github.com/itc-club/club-applications/internal/types"
)

// Filter narrows the application list in the dashboard. Zero values mean
// "no constraint".
type Filter struct {
	// Domains keeps records whose first-choice domain is in the set.
	Domains []types.Domain
	// Departments keeps records from the given departments.
	Departments []string
	// Search matches a case-insensitive substring of name or email.
	Search string
}

// Stats is the dashboard summary over the filtered records.
type Stats struct {
	TotalApplications int            `json:"total_applications"`
	AverageTotal      float64        `json:"average_total"`
	Departments       int            `json:"departments"`
	ByFirstChoice     map[string]int `json:"by_first_choice"`
}

// Service provides the read side of the application log for the dashboard.
type Service struct {
	records store.RecordStore
}

// NewService creates an admin dashboard service.
func NewService(records store.RecordStore) *Service {
	return &Service{records: records}
}

// List returns the filtered records sorted by total score, best first.
func (s *Service) List(ctx context.Context, f Filter) ([]types.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("failed to read applications", err)
	}

	filtered := make([]types.Record, 0, len(records))
	for _, rec := range records {
		if f.matches(&rec) {
			filtered = append(filtered, rec)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].TotalScore > filtered[j].TotalScore
	})
	return filtered, nil
}

// Stats summarizes the filtered records.
func (s *Service) Stats(ctx context.Context, f Filter) (*Stats, error) {
	records, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalApplications: len(records),
		ByFirstChoice:     make(map[string]int),
	}

	departments := make(map[string]struct{})
	var sum float64
	for _, rec := range records {
		sum += rec.TotalScore
		if dept := strings.TrimSpace(rec.Response.Department); dept != "" {
			departments[dept] = struct{}{}
		}
		if len(rec.Response.Ranking) > 0 {
			stats.ByFirstChoice[string(rec.Response.Ranking[0])]++
		}
	}
	stats.Departments = len(departments)
	if len(records) > 0 {
		stats.AverageTotal = round2(sum / float64(len(records)))
	}
	return stats, nil
}

// ExportCSV writes the filtered records to w using the canonical header
// row, one line per application. The layout matches the persisted column
// order so an export diffs cleanly against the store.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, f Filter) error {
	records, err := s.List(ctx, f)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(store.CanonicalHeaders); err != nil {
		return errors.NewInternalError("failed to write export header", err)
	}
	for i := range records {
		if err := cw.Write(exportRow(&records[i])); err != nil {
			return errors.NewInternalError("failed to write export row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewInternalError("failed to flush export", err)
	}
	return nil
}

func (f *Filter) matches(rec *types.Record) bool {
	if len(f.Domains) > 0 {
		if len(rec.Response.Ranking) == 0 || !containsDomain(f.Domains, rec.Response.Ranking[0]) {
			return false
		}
	}
	if len(f.Departments) > 0 && !containsFold(f.Departments, rec.Response.Department) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(strings.TrimSpace(f.Search))
		if !strings.Contains(strings.ToLower(rec.Response.Name), needle) &&
			!strings.Contains(strings.ToLower(rec.Response.Email), needle) {
			return false
		}
	}
	return true
}

func containsDomain(domains []types.Domain, d types.Domain) bool {
	for _, v := range domains {
		if v == d {
			return true
		}
	}
	return false
}

func containsFold(items []string, s string) bool {
	for _, v := range items {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func exportRow(rec *types.Record) []string {
	r := &rec.Response
	return []string{
		r.Name, r.Email, r.Phone, r.StudentID, r.Department, r.AcademicYear,
		r.FBLink, r.DiscordID, r.DateOfBirth,

		r.Ranking.String(),

		store.JoinMulti(r.Tech.Areas),
		store.JoinMulti(r.Tech.Languages),
		store.JoinMulti(r.Tech.ProjectDesc),
		r.Tech.Portfolio,
		store.JoinMulti(r.Tech.Tools),
		strconv.Itoa(r.Tech.SelfRate),
		strconv.Itoa(rec.TechScore),

		store.JoinMulti(r.Media.Areas),
		store.JoinMulti(r.Media.Tools),
		r.Media.FreelanceExp,
		store.JoinMulti(r.Media.Tasks),
		store.JoinMulti(r.Media.EditingTools),
		store.JoinMulti(r.Media.Equipment),
		r.Media.Portfolio,
		store.JoinMulti(r.Media.ProjectDesc),
		strconv.Itoa(r.Media.DesignRate),
		strconv.Itoa(r.Media.EditingRate),
		strconv.Itoa(rec.MediaScore),

		store.JoinMulti(r.Sponsor.Areas),
		store.JoinMulti(r.Sponsor.Experience),
		r.Sponsor.EventParticipation,
		r.Sponsor.Connections,
		r.Sponsor.PublicSpeaking,
		r.Sponsor.RepresentClub,
		strconv.Itoa(r.Sponsor.CommRate),
		strconv.Itoa(rec.SponsorScore),

		r.WhyJoin, r.Motivation, r.Teamwork, r.FutureGoal, r.FreeTime,
		r.ActiveEvents, r.HowKnown, r.OtherClub, r.Role, r.TeamLeader, r.Extra,

		strconv.FormatFloat(rec.TotalScore, 'f', 2, 64),
		rec.SubmittedAt.Format("2006-01-02 15:04:05"),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
