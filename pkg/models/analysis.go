package models

// AnalysisKind identifies one of the supported analysis variants. The zero
// request defaults to the baseline review, which is the only kind that
// returns a fixed-schema object rather than free-form text.
type AnalysisKind string

const (
	KindAnalyze     AnalysisKind = "analyze"      // baseline AI review (structured)
	KindDetailed    AnalysisKind = "detailed"     // detailed written report
	KindATSCheck    AnalysisKind = "ats"          // ATS compatibility check
	KindATSImprove  AnalysisKind = "ats-improve"  // ATS score improvement plan
	KindJobMatch    AnalysisKind = "job-match"    // match against a job description
	KindCoverLetter AnalysisKind = "cover-letter" // cover letter generation
)

// ParseAnalysisKind maps a request field value to an AnalysisKind. An empty
// value selects the baseline review; unrecognized values are rejected.
func ParseAnalysisKind(s string) (AnalysisKind, bool) {
	switch AnalysisKind(s) {
	case "":
		return KindAnalyze, true
	case KindAnalyze, KindDetailed, KindATSCheck, KindATSImprove, KindJobMatch, KindCoverLetter:
		return AnalysisKind(s), true
	default:
		return "", false
	}
}

// Structured reports whether the kind requires the fixed-schema object
// response instead of free-form text.
func (k AnalysisKind) Structured() bool {
	return k == KindAnalyze
}

// PromptPair carries the system and user instructions sent to the completion
// service. Immutable once constructed.
type PromptPair struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// AnalysisResult is the fixed-schema response of the structured analysis
// kind. The required fields are always present in values returned to
// callers; missing fields are backfilled with defaults before the response
// leaves the repair step.
type AnalysisResult struct {
	Score              int      `json:"score"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	Recommendations    []string `json:"recommendations"`
	FormattingFeedback string   `json:"formattingFeedback,omitempty"`
	OverallAssessment  string   `json:"overallAssessment,omitempty"`
}
