package scoring

import (
	"math"

	"github.com/itc-club/club-applications/internal/types"
)

// RankWeights are assigned by rank position: first choice 0.6, second 0.25,
// third 0.15. They sum to 1.0.
var RankWeights = [3]float64{0.6, 0.25, 0.15}

// totalScale compresses the weighted sum so totals stay comparable to the
// review sheet's expected range. The review formulas assume this exact
// scale; do not remove it even though the weights already sum to 1.
const totalScale = 3.0

// ScoreDomain computes the raw point total for one domain from the
// applicant's answers. It is pure and never fails: unknown multi-select
// values score their per-field default and unknown single-select values
// fall back to the documented default.
func ScoreDomain(d types.Domain, r *types.ApplicantResponse) int {
	switch d {
	case types.DomainTech:
		return scoreTech(r.Tech)
	case types.DomainMedia:
		return scoreMedia(r.Media)
	case types.DomainSponsoring:
		return scoreSponsor(r.Sponsor)
	}
	return 0
}

// ScoreAll computes all three domain scores for a response.
func ScoreAll(r *types.ApplicantResponse) map[types.Domain]int {
	return map[types.Domain]int{
		types.DomainTech:       scoreTech(r.Tech),
		types.DomainMedia:      scoreMedia(r.Media),
		types.DomainSponsoring: scoreSponsor(r.Sponsor),
	}
}

// WeightedTotal combines the three domain scores using the applicant's own
// ranking, scales the result down and rounds to 2 decimal places. The
// ranking must already have been validated; see guard.Admit.
func WeightedTotal(scores map[types.Domain]int, ranking types.DomainRanking) float64 {
	sum := 0.0
	for i, d := range ranking {
		if i >= len(RankWeights) {
			break
		}
		sum += float64(scores[d]) * RankWeights[i]
	}
	return round2(sum / totalScale)
}

func scoreTech(a types.TechAnswers) int {
	s := capCount(a.Areas, techAreaCap) * techAreaPoints
	s += capCount(a.Languages, techLanguageCap) * techLanguagePoints

	for _, p := range a.ProjectDesc {
		if pts, ok := techProjectPoints[p]; ok {
			s += pts
		} else {
			s += techProjectDefault
		}
	}

	toolPts := 0
	for _, t := range a.Tools {
		if t != techNoToolsYet {
			toolPts += techToolPoints
		}
	}
	if toolPts > techToolsMax {
		toolPts = techToolsMax
	}
	s += toolPts

	// Portfolio is deliberately inert: it is collected and stored but
	// earns no points.

	s += rateOrDefault(techSelfRate, a.SelfRate, techSelfRateDefault)
	return s
}

func scoreMedia(a types.MediaAnswers) int {
	s := capCount(a.Areas, mediaAreaCap) * mediaAreaPoints

	toolPts := 0
	for _, t := range a.Tools {
		if t != mediaWantToLearnTools {
			toolPts += mediaToolPoints
		}
	}
	if toolPts > mediaToolsMax {
		toolPts = mediaToolsMax
	}
	s += toolPts

	s += mediaFreelance[a.FreelanceExp] // unknown values score 0

	s += capCount(a.Tasks, mediaTaskCap) * mediaTaskPoints
	s += capCount(a.EditingTools, mediaEditingCap) * mediaEditingPoints
	s += capCount(a.Equipment, mediaEquipmentCap) * mediaEquipmentPoints

	// Portfolio: inert, same as Tech.

	for _, p := range a.ProjectDesc {
		s += mediaProjectPoints[p] // unknown items are worth 0
	}

	s += rateOrDefault(mediaDesignRate, a.DesignRate, mediaDesignRateDefault)
	s += rateOrDefault(mediaEditingRate, a.EditingRate, mediaEditingRateDefault)
	return s
}

func scoreSponsor(a types.SponsorAnswers) int {
	s := capCount(a.Areas, sponsorAreaCap) * sponsorAreaPoints

	// "None" zeroes the whole experience sub-score regardless of
	// co-selected items.
	if !containsString(a.Experience, sponsorNoExperience) {
		s += capCount(a.Experience, sponsorExpCap) * sponsorExpPoints
	}

	s += sponsorEventParticipation[a.EventParticipation]
	s += sponsorConnections[a.Connections]
	s += sponsorPublicSpeaking[a.PublicSpeaking]
	s += sponsorRepresentClub[a.RepresentClub]

	s += rateOrDefault(sponsorCommRate, a.CommRate, sponsorCommRateDefault)
	return s
}

// capCount counts selected items up to the rubric line's cap. Selections
// beyond the cap earn nothing; zero selections earn zero.
func capCount(items []string, limit int) int {
	n := len(items)
	if n > limit {
		n = limit
	}
	return n
}

func rateOrDefault(table map[int]int, rate, def int) int {
	if pts, ok := table[rate]; ok {
		return pts
	}
	return def
}

func containsString(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
