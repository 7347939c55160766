package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/itc-club/club-applications/internal/errors"
	"github.com/itc-club/club-applications/internal/types"
)

// SQLiteStore is a RecordStore backed by a local SQLite file. The table
// mirrors the canonical header schema column for column so that an export
// is a straight positional dump.
type SQLiteStore struct {
	db         *sql.DB
	insertStmt *sql.Stmt
}

// NewSQLiteStore opens (or creates) the application log.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "applications.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(1) // single writer; the log is append-only

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	stmt, err := db.Prepare(insertRecordSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	s.insertStmt = stmt

	slog.Info("Application store initialized", "path", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	cols := make([]string, 0, len(CanonicalHeaders)+1)
	cols = append(cols, "id TEXT PRIMARY KEY")
	for _, h := range CanonicalHeaders {
		cols = append(cols, h+" "+columnType(h))
	}

	queries := []string{
		"CREATE TABLE IF NOT EXISTS applications (" + strings.Join(cols, ", ") + ")",
		"CREATE INDEX IF NOT EXISTS idx_applications_email ON applications(Email)",
		"CREATE INDEX IF NOT EXISTS idx_applications_submitted ON applications(Submission_Date DESC)",
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return nil
}

func columnType(header string) string {
	switch header {
	case "Tech_Self_Rate", "Media_DesignRate", "Media_EditingRate", "Sponsor_Comm_Rate",
		"Tech_Score", "Media_Score", "Sponsor_Score":
		return "INTEGER NOT NULL"
	case "Total_Score":
		return "REAL NOT NULL"
	case "Submission_Date":
		return "DATETIME NOT NULL"
	default:
		return "TEXT"
	}
}

// EnsureHeaders verifies the table's column layout against CanonicalHeaders.
// A drifted schema means the deployment is pointed at the wrong file or an
// incompatible migration ran; refuse to write rather than corrupt the log.
func (s *SQLiteStore) EnsureHeaders(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info(applications)")
	if err != nil {
		return errors.NewStoreUnavailableError("failed to inspect application table", err)
	}
	defer rows.Close()

	var got []string
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return errors.NewStoreUnavailableError("failed to read application table info", err)
		}
		got = append(got, name)
	}
	if err := rows.Err(); err != nil {
		return errors.NewStoreUnavailableError("failed to read application table info", err)
	}

	want := append([]string{"id"}, CanonicalHeaders...)
	if len(got) != len(want) {
		return errors.NewConfigurationError(
			fmt.Sprintf("application table has %d columns, expected %d", len(got), len(want)), nil)
	}
	for i := range want {
		if got[i] != want[i] {
			return errors.NewConfigurationError(
				fmt.Sprintf("application table column %d is %q, expected %q", i, got[i], want[i]), nil)
		}
	}
	return nil
}

var insertRecordSQL = "INSERT INTO applications (id, " + strings.Join(CanonicalHeaders, ", ") +
	") VALUES (" + placeholders(len(CanonicalHeaders)+1) + ")"

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Append writes one record. Records are never updated afterwards.
func (s *SQLiteStore) Append(ctx context.Context, rec *types.Record) error {
	r := &rec.Response
	_, err := s.insertStmt.ExecContext(ctx,
		rec.ID,
		r.Name, r.Email, r.Phone, r.StudentID, r.Department, r.AcademicYear,
		r.FBLink, r.DiscordID, r.DateOfBirth,

		r.Ranking.String(),

		JoinMulti(r.Tech.Areas),
		JoinMulti(r.Tech.Languages),
		JoinMulti(r.Tech.ProjectDesc),
		r.Tech.Portfolio,
		JoinMulti(r.Tech.Tools),
		r.Tech.SelfRate,
		rec.TechScore,

		JoinMulti(r.Media.Areas),
		JoinMulti(r.Media.Tools),
		r.Media.FreelanceExp,
		JoinMulti(r.Media.Tasks),
		JoinMulti(r.Media.EditingTools),
		JoinMulti(r.Media.Equipment),
		r.Media.Portfolio,
		JoinMulti(r.Media.ProjectDesc),
		r.Media.DesignRate,
		r.Media.EditingRate,
		rec.MediaScore,

		JoinMulti(r.Sponsor.Areas),
		JoinMulti(r.Sponsor.Experience),
		r.Sponsor.EventParticipation,
		r.Sponsor.Connections,
		r.Sponsor.PublicSpeaking,
		r.Sponsor.RepresentClub,
		r.Sponsor.CommRate,
		rec.SponsorScore,

		r.WhyJoin, r.Motivation, r.Teamwork, r.FutureGoal, r.FreeTime,
		r.ActiveEvents, r.HowKnown, r.OtherClub, r.Role, r.TeamLeader, r.Extra,

		rec.TotalScore,
		rec.SubmittedAt,
	)
	if err != nil {
		return errors.NewStoreUnavailableError("failed to append application record", err)
	}
	return nil
}

// List returns every persisted record in submission order.
func (s *SQLiteStore) List(ctx context.Context) ([]types.Record, error) {
	query := "SELECT id, " + strings.Join(CanonicalHeaders, ", ") +
		" FROM applications ORDER BY Submission_Date ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("failed to list application records", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.NewStoreUnavailableError("failed to scan application record", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnavailableError("failed to list application records", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (*types.Record, error) {
	var rec types.Record
	var ranking string
	var techAreas, techLanguages, techProjects, techTools string
	var mediaAreas, mediaTools, mediaTasks, mediaEditing, mediaEquip, mediaProjects string
	var sponsorAreas, sponsorExp string
	r := &rec.Response

	err := rows.Scan(
		&rec.ID,
		&r.Name, &r.Email, &r.Phone, &r.StudentID, &r.Department, &r.AcademicYear,
		&r.FBLink, &r.DiscordID, &r.DateOfBirth,

		&ranking,

		&techAreas, &techLanguages, &techProjects, &r.Tech.Portfolio, &techTools,
		&r.Tech.SelfRate, &rec.TechScore,

		&mediaAreas, &mediaTools, &r.Media.FreelanceExp, &mediaTasks, &mediaEditing,
		&mediaEquip, &r.Media.Portfolio, &mediaProjects, &r.Media.DesignRate,
		&r.Media.EditingRate, &rec.MediaScore,

		&sponsorAreas, &sponsorExp, &r.Sponsor.EventParticipation, &r.Sponsor.Connections,
		&r.Sponsor.PublicSpeaking, &r.Sponsor.RepresentClub, &r.Sponsor.CommRate,
		&rec.SponsorScore,

		&r.WhyJoin, &r.Motivation, &r.Teamwork, &r.FutureGoal, &r.FreeTime,
		&r.ActiveEvents, &r.HowKnown, &r.OtherClub, &r.Role, &r.TeamLeader, &r.Extra,

		&rec.TotalScore,
		&rec.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Ranking = parseRanking(ranking)
	r.Tech.Areas = SplitMulti(techAreas)
	r.Tech.Languages = SplitMulti(techLanguages)
	r.Tech.ProjectDesc = SplitMulti(techProjects)
	r.Tech.Tools = SplitMulti(techTools)
	r.Media.Areas = SplitMulti(mediaAreas)
	r.Media.Tools = SplitMulti(mediaTools)
	r.Media.Tasks = SplitMulti(mediaTasks)
	r.Media.EditingTools = SplitMulti(mediaEditing)
	r.Media.Equipment = SplitMulti(mediaEquip)
	r.Media.ProjectDesc = SplitMulti(mediaProjects)
	r.Sponsor.Areas = SplitMulti(sponsorAreas)
	r.Sponsor.Experience = SplitMulti(sponsorExp)

	return &rec, nil
}

func parseRanking(s string) types.DomainRanking {
	var ranking types.DomainRanking
	for _, part := range SplitMulti(s) {
		if d, ok := types.ParseDomain(part); ok {
			ranking = append(ranking, d)
		}
	}
	return ranking
}

// Close closes the store and its prepared statement.
func (s *SQLiteStore) Close() error {
	if s.insertStmt != nil {
		if err := s.insertStmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "error", err)
		}
	}
	return s.db.Close()
}
