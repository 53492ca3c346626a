package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spigell/job-radar/internal/adzuna"
	"github.com/spigell/job-radar/internal/filtering"
	"github.com/spigell/job-radar/internal/jobs"
	"github.com/spigell/job-radar/internal/resume"
)

type rankedJobsQuery struct {
	filtering.Criteria
	UserID string `form:"userId"`
}

// rankedJobs handles GET /api/jobs.
func (h *handler) rankedJobs(c *gin.Context) {
	var q rankedJobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "message": err.Error()})
		return
	}
	// skills=Go,React and skills=Go&skills=React are both accepted.
	q.Skills = filtering.ParseSkills(strings.Join(q.Skills, ","))

	ranked, err := h.feed.RankedJobs(c.Request.Context(), q.UserID, q.Criteria)
	if err != nil {
		fail(c, "Failed to process jobs", err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// providerHealth handles GET /api/jobs/health.
func (h *handler) providerHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.Health(c.Request.Context()))
}

type searchQuery struct {
	Keyword  string `form:"keyword"`
	Location string `form:"location"`
	Page     int    `form:"page"`
}

// search handles GET /api/jobs/search.
func (h *handler) search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "message": err.Error()})
		return
	}

	found, err := h.feed.Search(c.Request.Context(), q.Keyword, q.Location, q.Page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to search jobs",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobs":    found.Items,
		"count":   found.Len(),
		"source":  adzuna.Provider,
	})
}

type scoreRequest struct {
	UserID string      `json:"userId"`
	Resume string      `json:"resume"`
	Jobs   []*jobs.Job `json:"jobs" binding:"required"`
}

// scoreJobs handles POST /api/jobs/score. Without resume text in the body
// the stored resume of the user is used.
func (h *handler) scoreJobs(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	var r *resume.Resume
	if strings.TrimSpace(req.Resume) != "" {
		r = &resume.Resume{Text: req.Resume}
	} else if stored, err := h.feed.Resume(c.Request.Context(), req.UserID); err == nil {
		r = stored
	}

	scored := h.feed.ScoreJobsAgainstResume(c.Request.Context(), req.Jobs, r)
	c.JSON(http.StatusOK, gin.H{"jobs": scored, "total": len(scored)})
}

// jobByID handles GET /api/jobs/:id.
func (h *handler) jobByID(c *gin.Context) {
	job, err := h.feed.JobByID(c.Param("id"))
	if err != nil {
		fail(c, "Job not found", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

type extractSkillsRequest struct {
	Text string `json:"text"`
}

// extractSkills handles POST /api/skills/extract.
func (h *handler) extractSkills(c *gin.Context) {
	var req extractSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	found := h.feed.ExtractSkills(req.Text)
	c.JSON(http.StatusOK, gin.H{"skills": found, "count": len(found)})
}
