package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/resume"
	"github.com/spigell/job-radar/internal/storage"
)

const resumeFormField = "file"

// uploadResume handles POST /api/resume/upload (multipart, field "file").
func (h *handler) uploadResume(c *gin.Context) {
	header, err := c.FormFile(resumeFormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No file uploaded",
			"message": "Please select a resume file to upload",
		})
		return
	}
	if header.Size > resume.MaxUploadBytes {
		fail(c, "Resume processing failed", resume.ErrTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		fail(c, "Resume processing failed", fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, resume.MaxUploadBytes+1))
	if err != nil {
		fail(c, "Resume processing failed", fmt.Errorf("read upload: %w", err))
		return
	}

	userID := c.PostForm("userId")
	if userID == "" {
		userID = c.Query("userId")
	}

	h.logger.Debug("uploading resume",
		zap.String("file_name", header.Filename),
		zap.String("content_type", header.Header.Get("Content-Type")),
		zap.Int("size", len(data)),
	)

	r, err := h.feed.IngestResume(c.Request.Context(), userID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		fail(c, "Resume processing failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Resume uploaded and parsed successfully",
		"resumeId":   r.ID,
		"textLength": len(r.Text),
		"skills":     r.Info.Skills,
		"skillCount": len(r.Info.Skills),
	})
}

// getResume handles GET /api/resume.
func (h *handler) getResume(c *gin.Context) {
	r, err := h.feed.Resume(c.Request.Context(), c.Query("userId"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"hasResume": false,
			"message":   "No resume uploaded yet",
		})
		return
	}
	if err != nil {
		fail(c, "Failed to load resume", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hasResume": true,
		"resume": gin.H{
			"id":            r.ID,
			"fileName":      r.FileName,
			"fileType":      r.FileType,
			"uploadDate":    r.UploadedAt,
			"skills":        r.Info.Skills,
			"skillCount":    len(r.Info.Skills),
			"textLength":    len(r.Text),
			"extractedInfo": r.Info,
		},
	})
}
