package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error sends the API's error shape: {"error": <message>}.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, map[string]string{"error": message})
}

// NotFound sends the read-path miss shape. A miss is a successful lookup,
// not an error, so the status is 200.
func NotFound(c echo.Context, criteria map[string]any) error {
	return c.JSON(http.StatusOK, map[string]any{
		"result":          nil,
		"message":         "No records found",
		"search_criteria": criteria,
	})
}
