package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/inference"
	"github.com/yourusername/resumeiq-api/internal/model"
	"github.com/yourusername/resumeiq-api/internal/repository"
)

// HistoryLimit is how many analyses the score chart shows.
const HistoryLimit = 30

// HistoryService stores analyses and builds the score-over-time chart.
type HistoryService struct {
	store repository.HistoryStore
}

func NewHistoryService(store repository.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// SaveAnalysis stores a under a fresh resume:<uuid> key and returns the key.
func (s *HistoryService) SaveAnalysis(ctx context.Context, a model.ResumeAnalysis) (string, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encoding analysis: %w", err)
	}
	key := model.KeyPrefixResume + uuid.NewString()
	if _, err := s.store.Set(ctx, key, body); err != nil {
		return "", err
	}
	return key, nil
}

// ScoreChart returns the latest HistoryLimit resume scores, oldest first.
func (s *HistoryService) ScoreChart(ctx context.Context) ([]model.HistoryPoint, error) {
	entries, err := s.store.List(ctx, model.KeyPrefixResume, HistoryLimit)
	if err != nil {
		return nil, err
	}
	return ScorePoints(entries), nil
}

// ScorePoints converts newest-first entries into ascending chart points.
// Entries without a readable overallScore chart as 0.
func ScorePoints(entries []model.KeyValue) []model.HistoryPoint {
	points := make([]model.HistoryPoint, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		kv := entries[i]
		p := model.HistoryPoint{Date: "N/A"}
		if !kv.CreatedAt.IsZero() {
			p.Date = kv.CreatedAt.Format("Jan 2")
		}

		var fields map[string]any
		if err := json.Unmarshal(kv.Value, &fields); err != nil {
			log.Debug().Err(err).Str("key", kv.Key).Msg("Skipping unreadable history value")
		} else if score, ok := inference.LookupInt(fields, "overallScore"); ok {
			p.Score = score
		}
		points = append(points, p)
	}
	return points
}
