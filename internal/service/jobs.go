package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/model"
)

// JobSource is one upstream listing API.
type JobSource interface {
	SearchLiveJobs(ctx context.Context, jobTitle, location string) ([]model.LiveJob, error)
}

// LiveJobSearch asks each source in order and returns the first non-empty
// result. It fails only when every source failed.
type LiveJobSearch struct {
	sources []JobSource
}

func NewLiveJobSearch(sources ...JobSource) *LiveJobSearch {
	return &LiveJobSearch{sources: sources}
}

func (s *LiveJobSearch) SearchLiveJobs(ctx context.Context, jobTitle, location string) ([]model.LiveJob, error) {
	var errs []error
	for i, src := range s.sources {
		jobs, err := src.SearchLiveJobs(ctx, jobTitle, location)
		if err != nil {
			log.Warn().Err(err).Int("source", i).Msg("Job source failed, trying next")
			errs = append(errs, err)
			continue
		}
		if len(jobs) > 0 {
			return jobs, nil
		}
	}
	if len(errs) == len(s.sources) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return []model.LiveJob{}, nil
}
