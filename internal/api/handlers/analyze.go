package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/analysis"
	"resumeforge/internal/config"
	"resumeforge/internal/llm"
	"resumeforge/internal/logging"
	"resumeforge/internal/normalizer"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// AnalyzeResumeHandler handles resume analysis requests. The request is a
// multipart form carrying either an uploaded document under "resume" or a
// JSON object under "resumeData", plus an optional "analysisType" and
// "jobDescription".
func AnalyzeResumeHandler(cfg *config.Config, completer llm.Completer) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.GetGlobalLogger()
		start := time.Now()

		kind, ok := models.ParseAnalysisKind(c.FormValue("analysisType"))
		if !ok {
			return respondError(c, reqID, utils.NewInvalidInputError(
				fmt.Sprintf("unknown analysis type: %s", c.FormValue("analysisType"))))
		}

		in, err := analysisInput(c, cfg.Upload.MaxSize)
		if err != nil {
			return respondError(c, reqID, err)
		}

		logger.Info("Analysis request received", map[string]interface{}{
			"request_id":    reqID,
			"analysis_type": string(kind),
			"has_file":      in.Document != nil,
		})

		subject, err := normalizer.Normalize(in, cfg.Upload.TempDir)
		if err != nil {
			return respondError(c, reqID, err)
		}

		prompt, err := llm.BuildPrompt(kind, subject, c.FormValue("jobDescription"))
		if err != nil {
			return respondError(c, reqID, err)
		}

		opts := models.CompletionOptions{
			Temperature: cfg.LLM.ProseTemp,
			MaxTokens:   cfg.LLM.MaxTokens,
		}
		if kind.Structured() {
			opts.Temperature = cfg.LLM.StructuredTemp
			opts.JSONMode = true
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.LLM.Timeout)
		defer cancel()

		content, err := completer.Complete(ctx, prompt, opts)
		if err != nil {
			return respondError(c, reqID, err)
		}

		var payload interface{} = content
		if kind.Structured() {
			result, err := analysis.ParseAndRepair(content, logger)
			if err != nil {
				return respondError(c, reqID, err)
			}
			payload = result
		}

		logger.Info("Analysis completed", map[string]interface{}{
			"request_id":    reqID,
			"analysis_type": string(kind),
			"duration":      utils.FormatDuration(time.Since(start)),
		})

		return c.JSON(http.StatusOK, models.AnalyzeResponse{
			Success:       true,
			Kind:          kind,
			Analysis:      payload,
			ExtractedText: subject,
			RequestID:     reqID,
		})
	}
}

// analysisInput pulls the resume out of the form, preferring an uploaded
// document over inline structured data.
func analysisInput(c echo.Context, maxUploadSize int64) (normalizer.Input, error) {
	fileHeader, err := c.FormFile("resume")
	if err == nil && fileHeader != nil {
		if fileHeader.Size > maxUploadSize {
			return normalizer.Input{}, utils.NewInvalidInputError(
				fmt.Sprintf("uploaded file exceeds the %d byte limit", maxUploadSize))
		}
		return normalizer.Input{Document: fileHeader}, nil
	}

	if raw := c.FormValue("resumeData"); raw != "" {
		var structured map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &structured); err != nil {
			return normalizer.Input{}, utils.NewInvalidInputError("resumeData is not valid JSON")
		}
		return normalizer.Input{Structured: structured}, nil
	}

	return normalizer.Input{}, nil
}
