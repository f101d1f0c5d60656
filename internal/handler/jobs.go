package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/model"
)

// JobSearcher finds live listings for a role and location.
type JobSearcher interface {
	SearchLiveJobs(ctx context.Context, jobTitle, location string) ([]model.LiveJob, error)
}

type JobHandler struct {
	search JobSearcher
}

func NewJobHandler(search JobSearcher) *JobHandler {
	return &JobHandler{search: search}
}

type jobSearchRequest struct {
	JobTitle string `json:"job_title"`
	Location string `json:"location"`
}

// Search handles POST /jobs
// Upstream failures degrade to an empty list so the roadmap page still renders.
func (h *JobHandler) Search(c *gin.Context) {
	var req jobSearchRequest
	// An empty body falls back to the search defaults.
	_ = c.ShouldBindJSON(&req)

	jobs, err := h.search.SearchLiveJobs(c.Request.Context(), req.JobTitle, req.Location)
	if err != nil {
		log.Warn().Err(err).Str("job_title", req.JobTitle).Msg("Live job search failed")
		jobs = nil
	}
	if jobs == nil {
		jobs = []model.LiveJob{}
	}

	c.JSON(http.StatusOK, gin.H{"live_jobs": jobs})
}
