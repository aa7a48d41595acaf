package llm

import (
	"fmt"
	"strings"

	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// analysisJSONShape is embedded in the structured-analysis user instruction
// so the completion service is steered toward the exact response schema.
const analysisJSONShape = `{
  "score": <integer between 0 and 100>,
  "strengths": ["list of specific strengths"],
  "weaknesses": ["list of specific weaknesses"],
  "recommendations": ["list of actionable recommendations"],
  "formattingFeedback": "feedback on layout and formatting",
  "overallAssessment": "short overall assessment"
}`

const reviewerSystemPrompt = "You are an expert resume reviewer with years of experience in recruiting and career coaching. You give honest, specific, actionable feedback."

const atsSystemPrompt = "You are an Applicant Tracking System (ATS) expert. You know exactly how automated resume screening software parses, scores, and filters resumes."

const coverLetterSystemPrompt = "You are a professional career writer who crafts compelling, tailored cover letters that sound human and specific, never generic."

// BuildPrompt maps an analysis kind and its inputs to the instruction pair
// sent to the completion service. Pure: identical inputs always produce a
// byte-identical pair.
func BuildPrompt(kind models.AnalysisKind, subject string, jobDescription string) (models.PromptPair, error) {
	switch kind {
	case models.KindAnalyze:
		return models.PromptPair{
			System: reviewerSystemPrompt,
			User: fmt.Sprintf(`Analyze the following resume and respond with ONLY a valid JSON object, no additional text or markdown, matching exactly this shape:

%s

RESUME:
%s`, analysisJSONShape, subject),
		}, nil

	case models.KindDetailed:
		return models.PromptPair{
			System: reviewerSystemPrompt,
			User: fmt.Sprintf(`Write a detailed written report on the following resume. Cover content quality, structure, impact of wording, and gaps a recruiter would notice. Use clear section headings.

RESUME:
%s`, subject),
		}, nil

	case models.KindATSCheck:
		return models.PromptPair{
			System: atsSystemPrompt,
			User: fmt.Sprintf(`Evaluate how well the following resume would pass automated ATS screening. Point out parsing hazards, keyword coverage, and section naming problems.

RESUME:
%s`, subject),
		}, nil

	case models.KindATSImprove:
		return models.PromptPair{
			System: atsSystemPrompt,
			User: fmt.Sprintf(`Suggest concrete edits that would raise the ATS score of the following resume. For each suggestion show the current text and the improved replacement.

RESUME:
%s`, subject),
		}, nil

	case models.KindJobMatch:
		if strings.TrimSpace(jobDescription) == "" {
			return models.PromptPair{}, utils.NewInvalidInputError("job description is required for job-match analysis")
		}
		return models.PromptPair{
			System: reviewerSystemPrompt,
			User: fmt.Sprintf(`Compare the following resume against the job description. Identify matching qualifications, missing requirements, and how to reframe existing experience for this role.

JOB DESCRIPTION:
%s

RESUME:
%s`, jobDescription, subject),
		}, nil

	case models.KindCoverLetter:
		if strings.TrimSpace(jobDescription) != "" {
			return models.PromptPair{
				System: coverLetterSystemPrompt,
				User: fmt.Sprintf(`Write a cover letter for the candidate described by the resume below, tailored to the job description. Keep it under 400 words.

JOB DESCRIPTION:
%s

RESUME:
%s`, jobDescription, subject),
			}, nil
		}
		return models.PromptPair{
			System: coverLetterSystemPrompt,
			User: fmt.Sprintf(`Write a general-purpose cover letter for the candidate described by the resume below. Keep it under 400 words.

RESUME:
%s`, subject),
		}, nil

	default:
		return models.PromptPair{}, utils.NewInvalidInputError(fmt.Sprintf("unknown analysis kind: %s", kind))
	}
}

// BuildGeneratePrompt builds the instruction pair for rendering a polished
// plain-text resume from serialized structured resume data.
func BuildGeneratePrompt(resumeData string) models.PromptPair {
	return models.PromptPair{
		System: "You are a professional resume writer. You produce clean, well-structured plain-text resumes with consistent section ordering: contact, summary, experience, education, skills, projects.",
		User: fmt.Sprintf(`Write a complete plain-text resume from the following structured data. Omit any section that has no data. Do not invent facts.

RESUME DATA:
%s`, resumeData),
	}
}
