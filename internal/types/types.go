package types

import (
	"strings"
	"time"
)

// Domain identifies one of the three evaluation tracks.
type Domain string

const (
	DomainTech       Domain = "Tech"
	DomainMedia      Domain = "Media"
	DomainSponsoring Domain = "Sponsoring"
)

// AllDomains returns the fixed set of valid domains.
func AllDomains() [3]Domain {
	return [3]Domain{DomainTech, DomainMedia, DomainSponsoring}
}

// ParseDomain resolves a raw form value to a Domain. The original form
// labelled the third track "Sponsor" while the scoring side used
// "Sponsoring"; both spellings resolve to DomainSponsoring.
func ParseDomain(s string) (Domain, bool) {
	switch strings.TrimSpace(s) {
	case "Tech", "tech":
		return DomainTech, true
	case "Media", "media":
		return DomainMedia, true
	case "Sponsoring", "Sponsor", "sponsoring", "sponsor":
		return DomainSponsoring, true
	}
	return "", false
}

// DomainRanking is an applicant's ordered preference over the three domains.
// A valid ranking is a permutation of AllDomains.
type DomainRanking []Domain

// IsValid reports whether the ranking holds exactly the three domains with
// no duplicates.
func (r DomainRanking) IsValid() bool {
	if len(r) != 3 {
		return false
	}
	seen := make(map[Domain]bool, 3)
	for _, d := range r {
		switch d {
		case DomainTech, DomainMedia, DomainSponsoring:
			if seen[d] {
				return false
			}
			seen[d] = true
		default:
			return false
		}
	}
	return true
}

// String renders the ranking the way it is stored in the record row.
func (r DomainRanking) String() string {
	parts := make([]string, len(r))
	for i, d := range r {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}

// TechAnswers bundles the Tech-domain answers from the form.
type TechAnswers struct {
	Areas       []string `json:"areas"`
	Languages   []string `json:"languages"`
	ProjectDesc []string `json:"project_desc"`
	Portfolio   string   `json:"portfolio"`
	Tools       []string `json:"tools"`
	SelfRate    int      `json:"self_rate"`
}

// MediaAnswers bundles the Design & Media answers from the form.
type MediaAnswers struct {
	Areas        []string `json:"areas"`
	Tools        []string `json:"tools"`
	FreelanceExp string   `json:"freelance_exp"`
	Tasks        []string `json:"tasks"`
	EditingTools []string `json:"editing_tools"`
	Equipment    []string `json:"equipment"`
	Portfolio    string   `json:"portfolio"`
	ProjectDesc  []string `json:"project_desc"`
	DesignRate   int      `json:"design_rate"`
	EditingRate  int      `json:"editing_rate"`
}

// SponsorAnswers bundles the Sponsoring-domain answers from the form.
type SponsorAnswers struct {
	Areas              []string `json:"areas"`
	Experience         []string `json:"experience"`
	EventParticipation string   `json:"event_participation"`
	Connections        string   `json:"connections"`
	PublicSpeaking     string   `json:"public_speaking"`
	RepresentClub      string   `json:"represent_club"`
	CommRate           int      `json:"comm_rate"`
}

// ApplicantResponse is one submission's full set of answers. It is built
// once from form input and never mutated afterwards; a correction is a
// brand-new submission.
type ApplicantResponse struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	StudentID    string `json:"student_id"`
	Department   string `json:"department"`
	AcademicYear string `json:"academic_year"`
	FBLink       string `json:"fb_link"`
	DiscordID    string `json:"discord_id"`
	DateOfBirth  string `json:"date_of_birth"`

	Ranking DomainRanking `json:"domain_ranking"`

	Tech    TechAnswers    `json:"tech"`
	Media   MediaAnswers   `json:"media"`
	Sponsor SponsorAnswers `json:"sponsor"`

	WhyJoin      string `json:"why_join"`
	Motivation   string `json:"motivation"`
	Teamwork     string `json:"teamwork"`
	FutureGoal   string `json:"future_goal"`
	FreeTime     string `json:"free_time"`
	ActiveEvents string `json:"active_events"`
	HowKnown     string `json:"how_known"`
	OtherClub    string `json:"other_club"`
	Role         string `json:"role"`
	TeamLeader   string `json:"team_leader"`
	Extra        string `json:"extra"`
}

// Record is a persisted application: the original answers plus the three
// domain scores and the weighted total, computed once at admission.
type Record struct {
	ID       string            `json:"id"`
	Response ApplicantResponse `json:"response"`

	TechScore    int `json:"tech_score"`
	MediaScore   int `json:"media_score"`
	SponsorScore int `json:"sponsor_score"`

	TotalScore  float64   `json:"total_score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// DomainScores returns the per-domain scores keyed by domain.
func (r *Record) DomainScores() map[Domain]int {
	return map[Domain]int{
		DomainTech:       r.TechScore,
		DomainMedia:      r.MediaScore,
		DomainSponsoring: r.SponsorScore,
	}
}

// ReviewRecord is an admin-authored annotation referencing an application
// by name/email. It is append-only and never auto-generated.
type ReviewRecord struct {
	ID            string        `json:"id"`
	AdminName     string        `json:"admin_name"`
	CandidateName string        `json:"candidate_name"`
	TechScore     int           `json:"tech_score"`
	MediaScore    int           `json:"media_score"`
	SponsorScore  int           `json:"sponsor_score"`
	Ranking       DomainRanking `json:"domain_ranking"`
	TotalScore    float64       `json:"total_score"`

	MotivationScore int     `json:"motivation_score"`
	SkillsScore     int     `json:"skills_score"`
	ComputedTotal   float64 `json:"computed_total"`

	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
