package scoring

// Point tables for the three domain rubrics. The tables are part of the
// external contract with the review spreadsheet: the values must not drift
// from the published rubric. Single-select lookups fall back to a
// per-field default so that legacy or renamed answer labels degrade to a
// mid-tier value instead of failing.

// Tech domain.
const (
	techAreaPoints     = 3
	techAreaCap        = 8
	techLanguagePoints = 2
	techLanguageCap    = 8
	techToolPoints     = 3
	techToolsMax       = 30

	// Selecting this tool option earns nothing.
	techNoToolsYet = "No, but I’d like to try"

	techProjectDefault  = 2
	techSelfRateDefault = 7
)

// techProjectPoints overrides the default per-item project credit for the
// low-weight and null phrasings.
var techProjectPoints = map[string]int{
	"Modified or improved existing ideas or systems":                         1,
	"Conduct practical experiments or hands-on technical tests occasionally": 1,
	"Not yet, but excited to start":                                          0,
}

var techSelfRate = map[int]int{1: 2, 2: 5, 3: 7, 4: 9, 5: 12}

// Media domain.
const (
	mediaAreaPoints      = 2
	mediaAreaCap         = 5
	mediaToolPoints      = 2
	mediaToolsMax        = 10
	mediaTaskPoints      = 3
	mediaTaskCap         = 6
	mediaEditingPoints   = 2
	mediaEditingCap      = 6
	mediaEquipmentPoints = 2
	mediaEquipmentCap    = 6

	mediaWantToLearnTools = "None, but I’d like to learn"

	mediaDesignRateDefault  = 6
	mediaEditingRateDefault = 3
)

var mediaFreelance = map[string]int{
	"Yes":                      10,
	"Not yet, but I’d like to": 3,
	"No":                       0,
}

// mediaProjectPoints is the structured form of the per-item credit that the
// original form embedded in the answer labels themselves.
var mediaProjectPoints = map[string]int{
	"Participated in a design competition = 1pt":                                  1,
	"Created a complete project (poster, logo, UI/UX, 3D model, etc.) = 2pt":      2,
	"Designed for real events, clients, or organizations = 2pt":                   2,
	"Tried taking professional photos=1pt":                                        1,
	"Created a short film or video project = 2pt":                                 2,
	"Managed media coverage or promotional content = 1pt":                         1,
	"Made a marketing strategy / understand social media algorithms = 2pt":        2,
	"Tried or currently doing content creation=1pt":                               1,
	"Good at voice acting or acting = 2pt":                                        2,
}

var (
	mediaDesignRate  = map[int]int{1: 2, 2: 4, 3: 6, 4: 8, 5: 10}
	mediaEditingRate = map[int]int{1: 1, 2: 2, 3: 3, 4: 5, 5: 7}
)

// Sponsoring domain.
const (
	sponsorAreaPoints = 5
	sponsorAreaCap    = 5
	sponsorExpPoints  = 5
	sponsorExpCap     = 5

	// Selecting this zeroes the experience sub-score regardless of what
	// else was co-selected.
	sponsorNoExperience = "None"

	sponsorCommRateDefault = 6
)

var sponsorEventParticipation = map[string]int{
	"Yes, many times":           10,
	"Yes, once or twice":        4,
	"No, but I'd like to learn": 0,
}

var sponsorConnections = map[string]int{
	"Yes":   10,
	"Maybe": 5,
	"No":    0,
}

var sponsorPublicSpeaking = map[string]int{
	"Yes, confidently":                       10,
	"Sometimes":                              5,
	"Not really, but I’d like to get better": 2,
	"No, I prefer working behind the scenes": 0,
}

var sponsorRepresentClub = map[string]int{
	"Yes, definitely": 8,
	"Maybe":           4,
	"Not really":      0,
}

var sponsorCommRate = map[int]int{1: 2, 2: 4, 3: 6, 4: 9, 5: 12}
