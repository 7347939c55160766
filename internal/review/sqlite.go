package review

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/itc-club/club-applications/internal/errors"
	"github.com/itc-club/club-applications/internal/store"
	"github.com/itc-club/club-applications/internal/types"
)

// SQLiteStore persists reviews next to the application log.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the review log.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "reviews.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Review store initialized", "path", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			admin_name TEXT NOT NULL,
			candidate_name TEXT NOT NULL,
			tech_score INTEGER NOT NULL,
			media_score INTEGER NOT NULL,
			sponsor_score INTEGER NOT NULL,
			domain_ranking TEXT NOT NULL,
			total_score REAL NOT NULL,
			motivation_score INTEGER NOT NULL,
			skills_score INTEGER NOT NULL,
			computed_total REAL NOT NULL,
			note TEXT,
			created_at DATETIME NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS idx_reviews_candidate ON reviews(candidate_name)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_created ON reviews(created_at DESC)",
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return nil
}

// Append writes one review. Reviews are never updated afterwards.
func (s *SQLiteStore) Append(ctx context.Context, rec *types.ReviewRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, admin_name, candidate_name, tech_score, media_score,
			sponsor_score, domain_ranking, total_score, motivation_score, skills_score,
			computed_total, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AdminName, rec.CandidateName, rec.TechScore, rec.MediaScore,
		rec.SponsorScore, rec.Ranking.String(), rec.TotalScore, rec.MotivationScore,
		rec.SkillsScore, rec.ComputedTotal, rec.Note, rec.CreatedAt,
	)
	if err != nil {
		return errors.NewStoreUnavailableError("failed to append review record", err)
	}
	return nil
}

// List returns every review in creation order.
func (s *SQLiteStore) List(ctx context.Context) ([]types.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, admin_name, candidate_name, tech_score, media_score, sponsor_score,
			domain_ranking, total_score, motivation_score, skills_score, computed_total,
			note, created_at
		FROM reviews ORDER BY created_at ASC`)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("failed to list review records", err)
	}
	defer rows.Close()

	var reviews []types.ReviewRecord
	for rows.Next() {
		var rec types.ReviewRecord
		var ranking string
		var note sql.NullString
		err := rows.Scan(&rec.ID, &rec.AdminName, &rec.CandidateName, &rec.TechScore,
			&rec.MediaScore, &rec.SponsorScore, &ranking, &rec.TotalScore,
			&rec.MotivationScore, &rec.SkillsScore, &rec.ComputedTotal, &note, &rec.CreatedAt)
		if err != nil {
			return nil, errors.NewStoreUnavailableError("failed to scan review record", err)
		}
		rec.Ranking = parseRanking(ranking)
		rec.Note = note.String
		reviews = append(reviews, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnavailableError("failed to list review records", err)
	}
	return reviews, nil
}

func parseRanking(s string) types.DomainRanking {
	var ranking types.DomainRanking
	for _, part := range store.SplitMulti(s) {
		if d, ok := types.ParseDomain(part); ok {
			ranking = append(ranking, d)
		}
	}
	return ranking
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
