package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/dtos"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/middleware"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/services"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/store"
	"github.com/gin-gonic/gin"
)

// Dependency injection: handlers hold the services they call.
type JobHandler struct {
	JobService     *services.JobService
	ExtractService *services.ExtractService
}

func NewJobHandler(jobs *services.JobService, extract *services.ExtractService) *JobHandler {
	return &JobHandler{
		JobService:     jobs,
		ExtractService: extract,
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// List is the GET /jobs endpoint.
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.JobService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Create is the POST /jobs endpoint.
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, job)
}

// Update is the PUT /jobs/:id endpoint.
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dtos.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.Update(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found."})
		case errors.Is(err, services.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete is the DELETE /jobs/:id endpoint.
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	if err := h.JobService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Search is the GET /jobs/search?q= endpoint.
func (h *JobHandler) Search(c *gin.Context) {
	jobs, err := h.JobService.Search(c.Request.Context(), middleware.UserID(c), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Ingest is the POST /ingest endpoint: raw scraped text in, structured job
// record out, committed under the authenticated caller.
func (h *JobHandler) Ingest(c *gin.Context) {
	var req dtos.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	_, fields, err := h.ExtractService.Extract(c.Request.Context(), middleware.UserID(c), req.Text)
	if err != nil {
		var missing *services.MissingFieldError
		switch {
		case errors.Is(err, services.ErrNoJSONFound),
			errors.Is(err, services.ErrMalformedJSON),
			errors.As(err, &missing):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": "AI Extraction failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dtos.IngestResponse{
		Status:     "success",
		Received:   req.Text,
		JobDetails: fields,
	})
}

func jobID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id."})
		return 0, false
	}
	return uint(id), true
}
