package handlers

import (
	"errors"
	"net/http"

	"moodtracker-backend/service"

	"github.com/gin-gonic/gin"
)

// errorBody builds the error half of the response envelope. Diagnostic detail
// rides along only outside production.
func errorBody(code, message string, err error, dev bool) gin.H {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if dev && err != nil {
		body["detail"] = err.Error()
	}
	return body
}

// upstreamStatus maps an error to an HTTP status, preferring the upstream
// provider's own status when the error carries one.
func upstreamStatus(err error) (int, string, bool) {
	var upstream *service.UpstreamError
	if errors.As(err, &upstream) {
		status := upstream.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		return status, upstream.Detail, true
	}
	return 0, "", false
}
