package models

import "time"

// AnalyzeResponse represents the response from an analysis request. Analysis
// is an *AnalysisResult for the structured kind and a string for the
// free-form kinds.
type AnalyzeResponse struct {
	Success       bool         `json:"success"`
	Kind          AnalysisKind `json:"analysisType"`
	Analysis      interface{}  `json:"analysis"`
	ExtractedText string       `json:"extractedText"`
	RequestID     string       `json:"requestId,omitempty"`
}

// GenerateResponse represents the response from a resume generation request.
// Fallback is set when the deterministic formatter produced the text because
// the completion service was unavailable.
type GenerateResponse struct {
	Success    bool   `json:"success"`
	ResumeText string `json:"resumeText"`
	Fallback   bool   `json:"fallback,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}
