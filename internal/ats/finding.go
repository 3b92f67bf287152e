package ats

// Status is the outcome of a single check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPass, StatusWarning, StatusFail:
		return true
	default:
		return false
	}
}

// rank orders statuses worst first.
func (s Status) rank() int {
	switch s {
	case StatusFail:
		return 0
	case StatusWarning:
		return 1
	default:
		return 2
	}
}

// Check identifiers.
const (
	CheckContactInfo       = "contact-info"
	CheckSectionSummary    = "section-summary"
	CheckSectionExperience = "section-experience"
	CheckSectionEducation  = "section-education"
	CheckSectionSkills     = "section-skills"
	CheckWordCount         = "word-count"
	CheckActionVerbs       = "action-verbs"
	CheckMetrics           = "metrics"
	CheckFormatting        = "formatting"
	CheckKeywordMatch      = "keyword-match"
	CheckDateFormat        = "date-format"
	CheckPronouns          = "pronouns"
	CheckReadability       = "readability"
)

// Check weights. These are fixed and never read from configuration.
const (
	weightContactInfo       = 11
	weightSectionSummary    = 6
	weightSectionExperience = 8
	weightSectionEducation  = 8
	weightSectionSkills     = 10
	weightWordCount         = 8
	weightActionVerbs       = 10
	weightMetrics           = 11
	weightFormatting        = 5
	weightKeywordMatch      = 12
	weightDateFormat        = 5
	weightPronouns          = 5
	weightReadability       = 5
)

// Finding is the result of one scoring criterion.
type Finding struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Status  Status   `json:"status"`
	Message string   `json:"message"`
	Weight  int      `json:"weight"`
	Details []string `json:"details,omitempty"`
}

// Result is the output of a full analysis.
type Result struct {
	Score  int       `json:"score"`
	Checks []Finding `json:"checks"`
}

// Find returns the finding with the given id.
func (r Result) Find(id string) (Finding, bool) {
	for _, f := range r.Checks {
		if f.ID == id {
			return f, true
		}
	}
	return Finding{}, false
}
