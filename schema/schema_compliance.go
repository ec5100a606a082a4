package schema

// TotalScoreKey is the pseudo standard used for the mean of all standard scores.
const TotalScoreKey StandardID = "total_score"

// Standard is one named quality rule loaded from the standards configuration.
type Standard struct {
	ID          StandardID `json:"id" yaml:"id"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Intent      string     `json:"intent,omitempty" yaml:"intent,omitempty"`
}

// ComplianceRecord holds the standard scores of one test file.
type ComplianceRecord struct {
	File       string                 `json:"file"`
	Scores     map[StandardID]float64 `json:"scores"` // Each score lies in [0,1]
	Coverage   CoverageMetrics        `json:"coverage"`
	TotalScore float64                `json:"total_score"` // Mean of Scores
}

// ComplianceSummary holds the mean compliance per standard across all files of a suite.
type ComplianceSummary struct {
	Files      int                    `json:"files"`
	Scores     map[StandardID]float64 `json:"scores"`      // Percentage, 2 decimals
	TotalScore float64                `json:"total_score"` // Percentage, 2 decimals
}

// BuildTimeResult is the outcome of reading a build log.
type BuildTimeResult struct {
	Raw     string  `json:"raw"`     // Text after the marker, empty when not found
	Found   bool    `json:"found"`   // Whether the marker occurrence was found
	Seconds float64 `json:"seconds"` // Parsed duration, 0 when unparseable
	Score   float64 `json:"score"`   // Compliance score in [0,1]
}
