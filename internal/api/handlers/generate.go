package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"resumeforge/internal/api/validation"
	"resumeforge/internal/config"
	"resumeforge/internal/formatter"
	"resumeforge/internal/llm"
	"resumeforge/internal/logging"
	"resumeforge/internal/normalizer"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

var resumeValidator = newResumeValidator()

func newResumeValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterResumeValidators(v)
	return v
}

// GenerateResumeHandler handles resume generation requests. The completion
// service writes the resume text; when it is unavailable the handler falls
// back to the deterministic formatter so the caller always gets a document.
func GenerateResumeHandler(cfg *config.Config, completer llm.Completer) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.GetGlobalLogger()
		start := time.Now()

		var req models.GenerateResumeRequest
		if err := c.Bind(&req); err != nil {
			return respondError(c, reqID, utils.NewInvalidInputError("request body is not valid JSON"))
		}

		if err := resumeValidator.Struct(&req); err != nil {
			return respondError(c, reqID, utils.NewValidationError(validationDetail(err)))
		}

		logger.Info("Generation request received", map[string]interface{}{
			"request_id": reqID,
			"name":       req.ContactInfo.Name,
		})

		rendered := normalizer.RenderStructured(resumeDataAsMap(req.ResumeData))
		prompt := llm.BuildGeneratePrompt(rendered)

		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.LLM.Timeout)
		defer cancel()

		content, err := completer.Complete(ctx, prompt, models.CompletionOptions{
			Temperature: cfg.LLM.ProseTemp,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
		if err != nil {
			if !utils.IsUpstreamError(err) {
				return respondError(c, reqID, err)
			}

			logger.Warn("Completion service unavailable, using fallback formatter", map[string]interface{}{
				"request_id": reqID,
				"error":      err.Error(),
			})

			return c.JSON(http.StatusOK, models.GenerateResponse{
				Success:    true,
				ResumeText: formatter.RenderResumeText(req.ResumeData),
				Fallback:   true,
				RequestID:  reqID,
			})
		}

		logger.Info("Generation completed", map[string]interface{}{
			"request_id": reqID,
			"duration":   utils.FormatDuration(time.Since(start)),
		})

		return c.JSON(http.StatusOK, models.GenerateResponse{
			Success:    true,
			ResumeText: content,
			RequestID:  reqID,
		})
	}
}

// resumeDataAsMap round-trips the typed resume data through JSON so it can
// feed the generic structured renderer with its wire field names.
func resumeDataAsMap(data models.ResumeData) map[string]interface{} {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// validationDetail flattens validator errors into a single caller-facing
// message naming the first offending field.
func validationDetail(err error) string {
	if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
		fe := ve[0]
		switch fe.Tag() {
		case "required", "notblank":
			return fe.Field() + " is required"
		case "email":
			return fe.Field() + " must be a valid email address"
		default:
			return fe.Field() + " is invalid"
		}
	}
	return "invalid resume data"
}
