package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/resumeiq-api/internal/model"
)

// DefaultListLimit caps List when the caller passes no limit.
const DefaultListLimit = 100

// MemoryHistory is a process-local HistoryStore used when no database is
// configured. Contents are lost on restart.
type MemoryHistory struct {
	mu    sync.RWMutex
	items map[string]model.KeyValue
	now   func() time.Time
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{items: make(map[string]model.KeyValue), now: time.Now}
}

func (m *MemoryHistory) Set(_ context.Context, key string, value json.RawMessage) (*model.KeyValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kv := model.KeyValue{Key: key, Value: append(json.RawMessage(nil), value...), CreatedAt: m.now().UTC()}
	m.items[key] = kv
	return &kv, nil
}

func (m *MemoryHistory) Get(_ context.Context, key string) (*model.KeyValue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kv, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return &kv, nil
}

func (m *MemoryHistory) List(_ context.Context, prefix string, limit int) ([]model.KeyValue, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	out := []model.KeyValue{}
	for k, kv := range m.items {
		if strings.HasPrefix(k, prefix) {
			out = append(out, kv)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Key > out[j].Key
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
