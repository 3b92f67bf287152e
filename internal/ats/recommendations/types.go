package recommendations

// Recommendation represents a deterministic suggestion derived from ATS findings.
type Recommendation struct {
	ID       string `json:"id"`
	CheckID  string `json:"checkId,omitempty"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Why      string `json:"why"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Order    int    `json:"order"`
}

// Issue is a non-passing finding reduced to what the engine needs.
type Issue struct {
	CheckID string
	Status  string
	Label   string
	Message string
	Weight  int
}

// Input is the normalized data needed for recommendation generation.
type Input struct {
	Issues            []Issue
	MissingJDKeywords []string
	KeywordStatus     string
	FormattingIssues  []string
	MissingContact    []string
	ContactStatus     string
	WeakOpeners       []string
}
