package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Claude wraps the Anthropic Messages API
type Claude struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewClaude(apiKey, baseURL, model string) *Claude {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if model == "" {
		model = "claude-sonnet-4-5"
	}
	return &Claude{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

// ── Anthropic API request/response types ──────────────

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

const claudeJSONSystemPrompt = "Respond with ONLY a JSON object (no markdown, no backticks, no explanation)."

// Invoke sends the prompt as a single user message. Timeouts come from ctx.
func (c *Claude) Invoke(ctx context.Context, prompt string, shape Shape) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	reqBody := claudeRequest{
		Model:     c.model,
		MaxTokens: 2000,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}
	if shape == ShapeJSON {
		reqBody.System = claudeJSONSystemPrompt
	}

	body, err := postJSON(ctx, c.client, c.baseURL+"/v1/messages", map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	}, reqBody)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	var claudeResp claudeResponse
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", fmt.Errorf("parsing Claude response: %w", err)
	}

	var sb strings.Builder
	for _, block := range claudeResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}

	log.Debug().
		Int("inputTokens", claudeResp.Usage.InputTokens).
		Int("outputTokens", claudeResp.Usage.OutputTokens).
		Str("stopReason", claudeResp.StopReason).
		Msg("Claude response received")

	return sb.String(), nil
}
