package scoring

import (
	"testing"

	"github.com/itc-club/club-applications/internal/types"
	"github.com/stretchr/testify/assert"
)

func sel(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = "item"
	}
	return items
}

func TestScoreTech(t *testing.T) {
	tests := []struct {
		name     string
		answers  types.TechAnswers
		expected int
	}{
		{
			name:     "empty answers score only the self-rate default",
			answers:  types.TechAnswers{},
			expected: 7,
		},
		{
			// 3 areas, 2 languages, no projects, 1 tool, self-rate 3:
			// 9 + 4 + 0 + 3 + 7 = 23
			name: "typical submission",
			answers: types.TechAnswers{
				Areas:     sel(3),
				Languages: sel(2),
				Tools:     []string{"Git/GitHub"},
				SelfRate:  3,
			},
			expected: 23,
		},
		{
			name: "areas capped at 8 selections",
			answers: types.TechAnswers{
				Areas:    sel(12),
				SelfRate: 1,
			},
			expected: 8*3 + 2,
		},
		{
			name: "languages capped at 8 selections",
			answers: types.TechAnswers{
				Languages: sel(9),
				SelfRate:  1,
			},
			expected: 8*2 + 2,
		},
		{
			name: "project items score 2 by default with low-weight exceptions",
			answers: types.TechAnswers{
				ProjectDesc: []string{
					"Developed a responsive website",
					"Modified or improved existing ideas or systems",
					"Conduct practical experiments or hands-on technical tests occasionally",
					"Not yet, but excited to start",
				},
				SelfRate: 1,
			},
			expected: 2 + 1 + 1 + 0 + 2,
		},
		{
			name: "the no-tools-yet choice earns nothing",
			answers: types.TechAnswers{
				Tools:    []string{"Linux", "No, but I’d like to try"},
				SelfRate: 1,
			},
			expected: 3 + 2,
		},
		{
			name: "tool points capped at 30",
			answers: types.TechAnswers{
				Tools:    sel(13),
				SelfRate: 1,
			},
			expected: 30 + 2,
		},
		{
			name: "portfolio never contributes",
			answers: types.TechAnswers{
				Portfolio: "yes",
				SelfRate:  1,
			},
			expected: 2,
		},
		{
			name: "out-of-range self-rate falls back to the default",
			answers: types.TechAnswers{
				SelfRate: 9,
			},
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreTech(tt.answers))
		})
	}
}

func TestScoreMedia(t *testing.T) {
	tests := []struct {
		name     string
		answers  types.MediaAnswers
		expected int
	}{
		{
			// design default 6 + editing default 3
			name:     "empty answers score only the rate defaults",
			answers:  types.MediaAnswers{},
			expected: 9,
		},
		{
			// freelance want-to 3 + design 6 + editing 3 = 12
			name: "freelance interest with mid ratings",
			answers: types.MediaAnswers{
				FreelanceExp: "Not yet, but I’d like to",
				DesignRate:   3,
				EditingRate:  3,
			},
			expected: 12,
		},
		{
			name: "freelance yes",
			answers: types.MediaAnswers{
				FreelanceExp: "Yes",
				DesignRate:   1,
				EditingRate:  1,
			},
			expected: 10 + 2 + 1,
		},
		{
			name: "areas capped at 5",
			answers: types.MediaAnswers{
				Areas:       sel(7),
				DesignRate:  1,
				EditingRate: 1,
			},
			expected: 5*2 + 2 + 1,
		},
		{
			name: "want-to-learn tools choice excluded and tool points capped",
			answers: types.MediaAnswers{
				Tools:       []string{"Photoshop", "Figma", "Canva", "InDesign", "Adobe Illustrator", "Other", "None, but I’d like to learn"},
				DesignRate:  1,
				EditingRate: 1,
			},
			expected: 10 + 2 + 1,
		},
		{
			name: "tasks editing tools and equipment all capped at 6",
			answers: types.MediaAnswers{
				Tasks:        sel(7),
				EditingTools: sel(8),
				Equipment:    sel(9),
				DesignRate:   1,
				EditingRate:  1,
			},
			expected: 6*3 + 6*2 + 6*2 + 2 + 1,
		},
		{
			name: "project items score by the structured table",
			answers: types.MediaAnswers{
				ProjectDesc: []string{
					"Created a complete project (poster, logo, UI/UX, 3D model, etc.) = 2pt",
					"Tried taking professional photos=1pt",
					"an answer nobody has ever seen",
				},
				DesignRate:  1,
				EditingRate: 1,
			},
			expected: 2 + 1 + 0 + 2 + 1,
		},
		{
			name: "portfolio never contributes",
			answers: types.MediaAnswers{
				Portfolio:   "yes",
				DesignRate:  1,
				EditingRate: 1,
			},
			expected: 2 + 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreMedia(tt.answers))
		})
	}
}

func TestScoreSponsor(t *testing.T) {
	tests := []struct {
		name     string
		answers  types.SponsorAnswers
		expected int
	}{
		{
			name:     "empty answers score only the comm-rate default",
			answers:  types.SponsorAnswers{},
			expected: 6,
		},
		{
			name: "areas capped at 5",
			answers: types.SponsorAnswers{
				Areas:    sel(6),
				CommRate: 1,
			},
			expected: 5*5 + 2,
		},
		{
			name: "experience items score 5 each",
			answers: types.SponsorAnswers{
				Experience: []string{"Writing partnership proposals", "Communicating with partners or companies"},
				CommRate:   1,
			},
			expected: 10 + 2,
		},
		{
			name: "selecting None zeroes the experience sub-score entirely",
			answers: types.SponsorAnswers{
				Experience: []string{"Writing partnership proposals", "None", "Handling budgets or sponsorship funds"},
				CommRate:   1,
			},
			expected: 2,
		},
		{
			name: "single-select tables",
			answers: types.SponsorAnswers{
				EventParticipation: "Yes, many times",
				Connections:        "Maybe",
				PublicSpeaking:     "Not really, but I’d like to get better",
				RepresentClub:      "Yes, definitely",
				CommRate:           5,
			},
			expected: 10 + 5 + 2 + 8 + 12,
		},
		{
			name: "unknown single-select values score zero",
			answers: types.SponsorAnswers{
				EventParticipation: "Perhaps",
				Connections:        "Who knows",
				CommRate:           1,
			},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreSponsor(tt.answers))
		})
	}
}

func TestScoreDomainIsDeterministic(t *testing.T) {
	resp := &types.ApplicantResponse{
		Tech:    types.TechAnswers{Areas: sel(3), Languages: sel(2), Tools: []string{"Linux"}, SelfRate: 3},
		Media:   types.MediaAnswers{FreelanceExp: "Yes", DesignRate: 4, EditingRate: 2},
		Sponsor: types.SponsorAnswers{Areas: sel(2), Connections: "Yes", CommRate: 5},
	}

	for _, d := range types.AllDomains() {
		first := ScoreDomain(d, resp)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ScoreDomain(d, resp), "domain %s", d)
		}
	}
}

func TestScoreDomainUnknownDomain(t *testing.T) {
	assert.Equal(t, 0, ScoreDomain(types.Domain("Catering"), &types.ApplicantResponse{}))
}

func TestRankWeights(t *testing.T) {
	sum := 0.0
	for _, w := range RankWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Equal(t, [3]float64{0.6, 0.25, 0.15}, RankWeights)
}

func TestWeightedTotal(t *testing.T) {
	scores := map[types.Domain]int{
		types.DomainTech:       30,
		types.DomainMedia:      20,
		types.DomainSponsoring: 10,
	}

	tests := []struct {
		name     string
		ranking  types.DomainRanking
		expected float64
	}{
		{
			// (30*0.6 + 20*0.25 + 10*0.15) / 3 = 24.5 / 3
			name:     "tech first",
			ranking:  types.DomainRanking{types.DomainTech, types.DomainMedia, types.DomainSponsoring},
			expected: 8.17,
		},
		{
			// (10*0.6 + 20*0.25 + 30*0.15) / 3 = 15.5 / 3
			name:     "sponsoring first",
			ranking:  types.DomainRanking{types.DomainSponsoring, types.DomainMedia, types.DomainTech},
			expected: 5.17,
		},
		{
			// (20*0.6 + 30*0.25 + 10*0.15) / 3 = 21 / 3
			name:     "media first",
			ranking:  types.DomainRanking{types.DomainMedia, types.DomainTech, types.DomainSponsoring},
			expected: 7.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, WeightedTotal(scores, tt.ranking), 1e-9)
		})
	}
}

func TestWeightedTotalRoundsToTwoDecimals(t *testing.T) {
	scores := map[types.Domain]int{
		types.DomainTech:       7,
		types.DomainMedia:      11,
		types.DomainSponsoring: 13,
	}
	ranking := types.DomainRanking{types.DomainTech, types.DomainMedia, types.DomainSponsoring}

	// (7*0.6 + 11*0.25 + 13*0.15) / 3 = 8.9 / 3 = 2.9666...
	assert.Equal(t, 2.97, WeightedTotal(scores, ranking))
}
