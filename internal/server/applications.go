package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spigell/job-radar/internal/storage"
)

type trackRequest struct {
	storage.NewApplication
	UserID string `json:"userId"`
}

// trackApplication handles POST /api/applications/track.
func (h *handler) trackApplication(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	app, err := h.feed.TrackApplication(c.Request.Context(), req.UserID, req.NewApplication)
	if err != nil {
		fail(c, "Missing required fields", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"application": app,
		"message":     "Application tracked successfully",
	})
}

type statusRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// updateApplicationStatus handles PUT /api/applications/:id/status.
func (h *handler) updateApplicationStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	app, err := h.feed.UpdateApplicationStatus(c.Request.Context(), req.UserID, c.Param("id"), req.Status)
	if err != nil {
		title := "Invalid status"
		if statusFor(err) == http.StatusNotFound {
			title = "Application not found"
		}
		fail(c, title, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "application": app})
}

// listApplications handles GET /api/applications.
func (h *handler) listApplications(c *gin.Context) {
	apps, stats, err := h.feed.Applications(c.Request.Context(), c.Query("userId"), c.Query("status"))
	if err != nil {
		fail(c, "Failed to list applications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
		"stats":        stats,
	})
}

// clearApplications handles DELETE /api/applications/clear.
func (h *handler) clearApplications(c *gin.Context) {
	if err := h.feed.ClearApplications(c.Request.Context(), c.Query("userId")); err != nil {
		fail(c, "Failed to clear applications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"applications": []storage.Application{},
		"message":      "Applications cleared",
	})
}
