package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Groq talks to Groq's OpenAI-compatible chat completions endpoint.
type Groq struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGroq(apiKey, baseURL, model string) *Groq {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &Groq{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    *float64          `json:"temperature,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *Groq) Invoke(ctx context.Context, prompt string, shape Shape) (string, error) {
	if g.apiKey == "" {
		return "", ErrNotConfigured
	}

	reqBody := chatRequest{Model: g.model}
	if shape == ShapeJSON {
		temp := 0.1
		reqBody.Temperature = &temp
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: "system", Content: "JSON only."})
	}
	reqBody.Messages = append(reqBody.Messages, chatMessage{Role: "user", Content: prompt})

	body, err := postJSON(ctx, g.client, g.baseURL+"/chat/completions", map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	}, reqBody)
	if err != nil {
		return "", fmt.Errorf("calling Groq API: %w", err)
	}

	var cc chatResponse
	if err := json.Unmarshal(body, &cc); err != nil {
		return "", fmt.Errorf("parsing Groq response: %w", err)
	}
	if len(cc.Choices) == 0 || strings.TrimSpace(cc.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	return cc.Choices[0].Message.Content, nil
}
