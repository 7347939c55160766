package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itc-club/club-applications/internal/store"
	"github.com/itc-club/club-applications/internal/types"
)

func seedRecords(t *testing.T) *store.MemoryStore {
	t.Helper()
	records := store.NewMemoryStore()

	seed := []types.Record{
		{
			ID: "rec-1",
			Response: types.ApplicantResponse{
				Name:       "Linh Tran",
				Email:      "linh@example.com",
				Department: "Computer Science",
				Ranking:    types.DomainRanking{types.DomainTech, types.DomainMedia, types.DomainSponsoring},
			},
			TechScore:  23,
			TotalScore: 5.65,
		},
		{
			ID: "rec-2",
			Response: types.ApplicantResponse{
				Name:       "Minh Nguyen",
				Email:      "minh@example.com",
				Department: "Business",
				Ranking:    types.DomainRanking{types.DomainMedia, types.DomainTech, types.DomainSponsoring},
			},
			MediaScore: 12,
			TotalScore: 3.1,
		},
		{
			ID: "rec-3",
			Response: types.ApplicantResponse{
				Name:       "An Pham",
				Email:      "an@example.com",
				Department: "Computer Science",
				Ranking:    types.DomainRanking{types.DomainTech, types.DomainSponsoring, types.DomainMedia},
			},
			TechScore:  30,
			TotalScore: 7.2,
		},
	}
	for i := range seed {
		seed[i].SubmittedAt = time.Date(2025, 9, 1, 10, i, 0, 0, time.UTC)
		require.NoError(t, records.Append(context.Background(), &seed[i]))
	}
	return records
}

func TestServiceList(t *testing.T) {
	svc := NewService(seedRecords(t))

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{
			name:     "no filter sorts by total descending",
			filter:   Filter{},
			expected: []string{"rec-3", "rec-1", "rec-2"},
		},
		{
			name:     "first choice domain",
			filter:   Filter{Domains: []types.Domain{types.DomainMedia}},
			expected: []string{"rec-2"},
		},
		{
			name:     "department is case-insensitive",
			filter:   Filter{Departments: []string{"computer science"}},
			expected: []string{"rec-3", "rec-1"},
		},
		{
			name:     "search matches name substring",
			filter:   Filter{Search: "nguyen"},
			expected: []string{"rec-2"},
		},
		{
			name:     "search matches email",
			filter:   Filter{Search: "an@example"},
			expected: []string{"rec-3"},
		},
		{
			name:     "combined filters",
			filter:   Filter{Domains: []types.Domain{types.DomainTech}, Search: "linh"},
			expected: []string{"rec-1"},
		},
		{
			name:     "no match",
			filter:   Filter{Search: "nobody"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := svc.List(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(records))
			for _, rec := range records {
				ids = append(ids, rec.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestServiceStats(t *testing.T) {
	svc := NewService(seedRecords(t))

	stats, err := svc.Stats(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalApplications)
	assert.InDelta(t, 5.32, stats.AverageTotal, 1e-9)
	assert.Equal(t, 2, stats.Departments)
	assert.Equal(t, map[string]int{"Tech": 2, "Media": 1}, stats.ByFirstChoice)
}

func TestServiceStatsEmpty(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	stats, err := svc.Stats(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalApplications)
	assert.Zero(t, stats.AverageTotal)
	assert.Equal(t, 0, stats.Departments)
	assert.Empty(t, stats.ByFirstChoice)
}

func TestServiceExportCSV(t *testing.T) {
	svc := NewService(seedRecords(t))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf, Filter{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, store.CanonicalHeaders, rows[0])
	assert.Equal(t, "An Pham", rows[1][0])
	assert.Equal(t, "7.20", rows[1][len(rows[1])-2])
	assert.Equal(t, "Linh Tran", rows[2][0])
	assert.Equal(t, "Minh Nguyen", rows[3][0])
}
