package utils

import (
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// SendJSONError sends a standardized JSON error response and logs the internal error.
// For 5xx errors, it sends a generic public message while logging the actual internalError.
// For 4xx errors, the publicMsg is shown to the client, and internalError (if provided) is logged.
func SendJSONError(c *gin.Context, statusCode int, publicMsg string, internalError error, details ...string) {
	errorDetails := ""
	if len(details) > 0 {
		errorDetails = details[0] // Taking the first detail if multiple are provided for simplicity
	}

	response := gin.H{"error": publicMsg}
	if errorDetails != "" {
		response["details"] = errorDetails
	}

	// Log the error with more details internally
	if internalError != nil {
		log.Printf("ERROR: Handler error: status_code=%d, public_message='%s', internal_error='%v', details='%s', path='%s'",
			statusCode, publicMsg, internalError, errorDetails, c.Request.URL.Path)
	} else {
		log.Printf("INFO: Handler response: status_code=%d, public_message='%s', details='%s', path='%s'",
			statusCode, publicMsg, errorDetails, c.Request.URL.Path)
	}

	// For 5xx errors, ensure the public message is generic if not already.
	// The actual sensitive error is logged above and not sent to the client.
	if statusCode >= http.StatusInternalServerError && publicMsg == "" {
		response["error"] = "An unexpected error occurred. Please try again later."
	} else if statusCode >= http.StatusInternalServerError && internalError != nil && publicMsg == internalError.Error() {
		response["error"] = "An unexpected error occurred. Please try again later."
		log.Printf("WARN: For 5xx error, public message was same as internal error. Replaced with generic message for client. Original internal error: %v", internalError)
	}

	c.AbortWithStatusJSON(statusCode, response)
}

var (
	nonAlphanumRuns = regexp.MustCompile(`[^a-z0-9]+`)
	nonLetterRuns   = regexp.MustCompile(`[^a-z]+`)
)

// Slugify lowercases s, collapses runs of non-alphanumeric characters into
// single hyphens, trims leading/trailing hyphens and caps the result at
// maxLen bytes. It is deterministic: the same input always yields the same
// slug.
func Slugify(s string, maxLen int) string {
	slug := nonAlphanumRuns.ReplaceAllString(strings.ToLower(s), "-")
	if maxLen > 0 && len(slug) > maxLen {
		slug = slug[:maxLen]
	}
	return strings.Trim(slug, "-")
}

// DomainSlug derives a fallback domain slug from a display name by
// lowercasing and collapsing non-letter runs to single hyphens.
func DomainSlug(name string) string {
	return strings.Trim(nonLetterRuns.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
