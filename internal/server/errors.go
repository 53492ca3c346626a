package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spigell/job-radar/internal/jobfeed"
	"github.com/spigell/job-radar/internal/resume"
	"github.com/spigell/job-radar/internal/storage"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, resume.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, jobfeed.ErrInvalidInput),
		errors.Is(err, storage.ErrInvalidStatus),
		errors.Is(err, resume.ErrUnsupportedType),
		errors.Is(err, resume.ErrEmpty):
		return http.StatusBadRequest
	case errors.Is(err, jobfeed.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error response. Internal errors get a generic title
// and are recorded on the context for the request log.
func fail(c *gin.Context, title string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, gin.H{
		"error":   title,
		"message": err.Error(),
	})
}
