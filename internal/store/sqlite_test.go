package store

import (
	"context"
	"testing"
	"time"

	"github.com/itc-club/club-applications/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *types.Record {
	return &types.Record{
		ID: "rec-1",
		Response: types.ApplicantResponse{
			Name:         "Amel B",
			Email:        "amel@example.com",
			Department:   "Informatics",
			AcademicYear: "L2/ING2",
			Ranking:      types.DomainRanking{types.DomainTech, types.DomainMedia, types.DomainSponsoring},
			Tech: types.TechAnswers{
				Areas:     []string{"Robotics", "AI/ML"},
				Languages: []string{"Python"},
				Tools:     []string{"Git/GitHub", "Linux"},
				Portfolio: "no",
				SelfRate:  4,
			},
			Media: types.MediaAnswers{
				FreelanceExp: "No",
				DesignRate:   2,
				EditingRate:  3,
			},
			Sponsor: types.SponsorAnswers{
				Connections: "Maybe",
				CommRate:    3,
			},
			WhyJoin:    "to learn",
			Motivation: "robotics",
		},
		TechScore:    28,
		MediaScore:   7,
		SponsorScore: 11,
		TotalScore:   6.73,
		SubmittedAt:  time.Date(2025, 11, 3, 18, 30, 0, 0, time.UTC),
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.EnsureHeaders(ctx))

	rec := sampleRecord()
	require.NoError(t, s.Append(ctx, rec))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "amel@example.com", got.Response.Email)
	assert.Equal(t, types.DomainRanking{types.DomainTech, types.DomainMedia, types.DomainSponsoring}, got.Response.Ranking)
	assert.Equal(t, []string{"Robotics", "AI/ML"}, got.Response.Tech.Areas)
	assert.Equal(t, 4, got.Response.Tech.SelfRate)
	assert.Equal(t, 28, got.TechScore)
	assert.Equal(t, 7, got.MediaScore)
	assert.Equal(t, 11, got.SponsorScore)
	assert.InDelta(t, 6.73, got.TotalScore, 1e-9)
	assert.True(t, rec.SubmittedAt.Equal(got.SubmittedAt))
}

func TestSQLiteStoreEnsureHeadersDetectsDrift(t *testing.T) {
	s, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	// Simulate a migration that added a stray column.
	_, err = s.db.ExecContext(ctx, "ALTER TABLE applications ADD COLUMN Stray TEXT")
	require.NoError(t, err)

	assert.Error(t, s.EnsureHeaders(ctx))
}

func TestSQLiteStoreListEmpty(t *testing.T) {
	s, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	records, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJoinAndSplitMulti(t *testing.T) {
	assert.Equal(t, "", JoinMulti(nil))
	assert.Nil(t, SplitMulti(""))
	assert.Equal(t, []string{"a", "b"}, SplitMulti(JoinMulti([]string{"a", "b"})))
}
