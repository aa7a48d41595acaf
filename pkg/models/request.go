package models

// GenerateResumeRequest is the request payload for resume generation. The
// body is the structured resume data itself.
type GenerateResumeRequest struct {
	ResumeData
}
