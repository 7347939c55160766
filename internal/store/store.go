package store

import (
	"context"
	"strings"

	"github.com/itc-club/club-applications/internal/types"
)

// RecordStore is the narrow boundary to the append-only application log.
// Records are immutable once appended: there is no update or delete path.
type RecordStore interface {
	// EnsureHeaders verifies the store's column layout against the
	// canonical header schema. Called once at startup; a mismatch is a
	// configuration error, not a per-submission one.
	EnsureHeaders(ctx context.Context) error

	// List returns every persisted record.
	List(ctx context.Context) ([]types.Record, error)

	// Append adds one record. It performs no duplicate checking itself;
	// that is the submission guard's job.
	Append(ctx context.Context, rec *types.Record) error

	Close() error
}

// CanonicalHeaders is the fixed-order column schema shared with the review
// spreadsheet and the CSV export. Order matters: rows are written as
// positional scalar sequences.
var CanonicalHeaders = []string{
	"Name", "Email", "Phone", "Student_ID", "Department", "Academic_Year",
	"FB_Link", "Discord_ID", "Date_Birth",

	"Domain_Interest_Order",

	"Tech_Areas",
	"Tech_Programming_Languages",
	"Tech_Project_Desc",
	"Tech_Portfolio",
	"Tech_Tools",
	"Tech_Self_Rate",
	"Tech_Score",

	"Media_Areas",
	"Media_Tools",
	"Media_Freelance",
	"Media_Tasks",
	"Media_Editing_Tools",
	"Media_Equipment",
	"Media_Portfolio",
	"Media_Project_Desc",
	"Media_DesignRate",
	"Media_EditingRate",
	"Media_Score",

	"Sponsor_Areas",
	"Sponsor_Exp_Desc",
	"Sponsor_Event_Participation",
	"Sponsor_Connections",
	"Sponsor_Public_Speaking",
	"Sponsor_Represent_Club",
	"Sponsor_Comm_Rate",
	"Sponsor_Score",

	"Why_Join",
	"Motivation",
	"Teamwork",
	"Future_Goal",
	"Free_Time",
	"Active_Events",
	"How_Know_Us",
	"Other_Club",
	"Role",
	"Team_Leader",
	"Extra",

	"Total_Score",
	"Submission_Date",
}

// JoinMulti serializes a multi-select answer for the row schema.
func JoinMulti(items []string) string {
	return strings.Join(items, ", ")
}

// SplitMulti parses a serialized multi-select answer back into items.
// Labels that themselves contain ", " do not round-trip cleanly; this
// matches the original sheet format, and is harmless because scores are
// computed before persistence and stored answers are display-only.
func SplitMulti(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, p)
	}
	return items
}
