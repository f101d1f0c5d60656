package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/model"
	"github.com/yourusername/resumeiq-api/internal/repository"
	"github.com/yourusername/resumeiq-api/internal/service"
)

type KVHandler struct {
	store   repository.HistoryStore
	history *service.HistoryService
}

func NewKVHandler(store repository.HistoryStore, history *service.HistoryService) *KVHandler {
	return &KVHandler{store: store, history: history}
}

type kvSetRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Set handles POST /kv/set
func (h *KVHandler) Set(c *gin.Context) {
	var req kvSetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Key) == "" || len(req.Value) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key and value are required"})
		return
	}

	if _, err := h.store.Set(c.Request.Context(), req.Key, req.Value); err != nil {
		log.Error().Err(err).Str("key", req.Key).Msg("Failed to set kv entry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Get handles GET /kv/get/:key
func (h *KVHandler) Get(c *gin.Context) {
	kv, err := h.store.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to get kv entry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load"})
		return
	}
	if kv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", kv.Value)
}

type kvListRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
}

// List handles POST /kv/list
// Returns the stored values under prefix, newest first.
func (h *KVHandler) List(c *gin.Context) {
	var req kvListRequest
	_ = c.ShouldBindJSON(&req)
	if req.Prefix == "" {
		req.Prefix = model.KeyPrefixResume
	}
	if req.Limit <= 0 || req.Limit > repository.DefaultListLimit {
		req.Limit = repository.DefaultListLimit
	}

	entries, err := h.store.List(c.Request.Context(), req.Prefix, req.Limit)
	if err != nil {
		log.Error().Err(err).Str("prefix", req.Prefix).Msg("Failed to list kv entries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list"})
		return
	}

	values := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Value)
	}
	c.JSON(http.StatusOK, values)
}

// History handles GET /kv/history
func (h *KVHandler) History(c *gin.Context) {
	points, err := h.history.ScoreChart(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load score history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, points)
}
