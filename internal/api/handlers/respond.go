package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// requestID returns the ID the validation middleware set, generating one
// when the handler is exercised without the middleware (tests).
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

// respondError maps an application error to the failure response shape.
// Input errors surface as 400, upstream and malformed-response errors as
// 500; anything unclassified is an internal failure.
func respondError(c echo.Context, reqID string, err error) error {
	logging.GetGlobalLogger().Error("Request failed", map[string]interface{}{
		"request_id": reqID,
		"error":      err.Error(),
	})

	resp := models.ErrorResponse{
		Success:   false,
		RequestID: reqID,
	}

	var ce *utils.CustomError
	if errors.As(err, &ce) {
		resp.Error = ce.Message
		resp.Details = ce.Detail
	} else {
		resp.Error = "Internal server error"
	}

	return c.JSON(utils.HTTPStatusFor(err), resp)
}
