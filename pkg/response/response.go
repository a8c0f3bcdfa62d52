// Package response writes the {success, message, ...payload} envelope every endpoint returns.
package response

import (
	"net/http"

	"SDRAdmin/internal/apperror"

	"github.com/labstack/echo/v4"
)

// Payload holds the extra top level keys merged next to success and message.
type Payload map[string]any

func Success(c echo.Context, status int, message string, payload Payload) error {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// Fail writes an explicit failure without going through the error taxonomy.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{"success": false, "message": message})
}

// Error maps err onto a status code. Unexpected and dispatch failures carry the internal
// detail under "error" and use fallback as the client message.
func Error(c echo.Context, err error, fallback string) error {
	status := StatusOf(err)
	body := map[string]any{
		"success": false,
		"message": apperror.MessageOf(err, fallback),
	}
	if status >= http.StatusInternalServerError {
		body["error"] = err.Error()
	}
	return c.JSON(status, body)
}

func StatusOf(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindValidation, apperror.KindTooEarly:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
