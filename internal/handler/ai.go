package handler

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/document"
	"github.com/yourusername/resumeiq-api/internal/events"
	"github.com/yourusername/resumeiq-api/internal/inference"
	"github.com/yourusername/resumeiq-api/internal/model"
	"github.com/yourusername/resumeiq-api/internal/service"
	"github.com/yourusername/resumeiq-api/internal/storage"
)

type AIHandler struct {
	engine  *inference.Engine
	store   storage.ObjectStore
	history *service.HistoryService
	events  events.Publisher
}

func NewAIHandler(engine *inference.Engine, store storage.ObjectStore, history *service.HistoryService, pub events.Publisher) *AIHandler {
	if pub == nil {
		pub = events.Noop{}
	}
	return &AIHandler{engine: engine, store: store, history: history, events: pub}
}

// ── Resume analysis ──────────────────────────────────

type chatRequest struct {
	Prompt  string `json:"prompt"`
	FileKey string `json:"fileKey"`
	FileURL string `json:"fileUrl"`
}

// Chat handles POST /ai/chat
// Loads a previously uploaded resume, scores it and records the result
func (h *AIHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	key := req.FileKey
	if key == "" {
		key = keyFromURL(req.FileURL)
	}
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileKey is required"})
		return
	}

	ctx := c.Request.Context()
	data, err := h.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume file not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	text, err := extractText(ctx, data, "", key)
	if err != nil {
		respondError(c, err)
		return
	}

	role := targetRoleFromPrompt(req.Prompt)
	log.Info().Str("key", key).Str("target_role", role).Int("chars", len(text)).Msg("Analyzing resume")

	res, err := h.engine.AnalyzeResume(ctx, text, role)
	if err != nil {
		respondError(c, err)
		return
	}

	id, err := h.history.SaveAnalysis(ctx, res.Value)
	if err != nil {
		// The analysis is still useful without a history entry.
		log.Error().Err(err).Msg("Failed to save analysis history")
		id = uuid.NewString()
	}

	score := int(res.Value.OverallScore)
	h.emit(ctx, id, inference.TaskResumeAnalysis, res.Degraded(), res.Provider, &score)

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"analysis": res.Value,
		"degraded": res.Degraded(),
		"provider": res.Provider,
	})
}

// ── Roadmap ──────────────────────────────────────────

// Roadmap handles POST /ai/roadmap
// Multipart "resume" file. Extracts search params first, then builds a
// roadmap toward the extracted job title.
func (h *AIHandler) Roadmap(c *gin.Context) {
	fh, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	data, err := readFile(fh)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	text, err := extractText(ctx, data, fh.Header.Get("Content-Type"), fh.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	params, err := h.engine.ExtractSearchParams(ctx, text)
	if err != nil {
		respondError(c, err)
		return
	}

	roadmap, err := h.engine.GenerateRoadmap(ctx, text, params.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	h.emit(ctx, uuid.NewString(), inference.TaskRoadmap, roadmap.Degraded(), roadmap.Provider, nil)

	c.JSON(http.StatusOK, gin.H{
		"analysis":     roadmap.Value,
		"searchParams": params.Value,
		"degraded":     roadmap.Degraded() || params.Degraded(),
	})
}

// ── LinkedIn ─────────────────────────────────────────

type linkedInRequest struct {
	ResumeText string `json:"resumeText"`
}

// LinkedInOptimize handles POST /ai/linkedin-optimize
func (h *AIHandler) LinkedInOptimize(c *gin.Context) {
	var req linkedInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	res, err := h.engine.OptimizeLinkedIn(ctx, req.ResumeText)
	if err != nil {
		respondError(c, err)
		return
	}

	h.emit(ctx, uuid.NewString(), inference.TaskLinkedInOptimize, res.Degraded(), res.Provider, nil)

	c.JSON(http.StatusOK, gin.H{"result": res.Value, "degraded": res.Degraded()})
}

// ── CodeQuest ────────────────────────────────────────

type reviewRequest struct {
	Code string `json:"code"`
}

// GetReview handles POST /ai/get-review
// Short or templated input asks for a new exercise; anything else is reviewed.
func (h *AIHandler) GetReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	res, err := h.engine.CodeQuest(ctx, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"result": res.Value.Text, "mode": res.Value.Mode, "degraded": res.Degraded()}
	var score *int
	if n, ok := inference.ExtractScore(res.Value.Text); ok {
		score = &n
		resp["score"] = n
	} else {
		resp["score"] = nil
	}

	task := inference.TaskCodeReview
	if res.Value.Mode != model.CodeModeReview {
		task = inference.TaskCodeGenerate
	}
	h.emit(ctx, uuid.NewString(), task, res.Degraded(), res.Provider, score)

	c.JSON(http.StatusOK, resp)
}

// ── Helpers ──────────────────────────────────────────

func (h *AIHandler) emit(ctx context.Context, id string, task inference.TaskKind, degraded bool, provider string, score *int) {
	events.Emit(context.WithoutCancel(ctx), h.events, events.AnalysisEvent{
		ID:       id,
		Task:     string(task),
		Degraded: degraded,
		Provider: provider,
		Score:    score,
	})
}

func extractText(ctx context.Context, data []byte, contentType, filename string) (string, error) {
	kind, err := document.DetectKind(contentType, filename)
	if err != nil {
		return "", err
	}
	res, err := document.Extract(ctx, data, kind)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// keyFromURL recovers the storage key from a public upload URL.
func keyFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if i := strings.LastIndex(raw, "uploads/"); i != -1 {
		return raw[i:]
	}
	return path.Join("uploads", path.Base(raw))
}
