package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

const jsonBodyLimit = 1 << 20 // JSON payloads never need more than 1MB

// RequestValidation middleware tags every request with an ID and enforces
// body-size limits before handlers read anything. Multipart uploads get the
// configured document budget; everything else gets the JSON cap.
func RequestValidation(maxUploadSize int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Add request ID to context
			requestID := utils.GenerateRequestID()
			c.Set("request_id", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			if c.Request().Method == http.MethodPost {
				limit := int64(jsonBodyLimit)
				if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
					// Allow headroom for multipart framing around the document
					limit = maxUploadSize + jsonBodyLimit
				}

				if c.Request().ContentLength > limit {
					return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
						Error:     "request_too_large",
						Details:   "Request body too large",
						RequestID: requestID,
					})
				}
			}

			return next(c)
		}
	}
}
