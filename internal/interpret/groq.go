// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interpret

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

// groqAPIBase is the Groq OpenAI-compatible chat-completions endpoint.
// Package-level var for test substitution.
var groqAPIBase = "https://api.groq.com/openai/v1/chat/completions"

const (
	defaultModel       = "mixtral-8x7b-32768"
	defaultTemperature = 0.3
)

// GroqBackend calls the Groq chat-completions API. One request per
// invocation; failures surface as errors rather than being retried.
type GroqBackend struct {
	Config types.InterpretationConfig
	Client *http.Client
}

// chatRequest is the request body for the chat-completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat-completions API.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// chatChoice is one completion candidate.
type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Complete submits one prompt and returns the model's reply text verbatim.
func (g *GroqBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.post(ctx, chatRequest{
		Model:       g.model(),
		Temperature: g.temperature(),
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("inference API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Probe makes a minimal one-token request to verify the API key and
// service availability before any real analysis is attempted.
func (g *GroqBackend) Probe(ctx context.Context) error {
	_, err := g.post(ctx, chatRequest{
		Model:     g.model(),
		MaxTokens: 1,
		Messages:  []chatMessage{{Role: "user", Content: "test"}},
	})
	return err
}

func (g *GroqBackend) post(ctx context.Context, body chatRequest) (*chatResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqAPIBase, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.Config.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling inference API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("inference API returned %d: %s", resp.StatusCode, string(b))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return nil, fmt.Errorf("decoding inference response: %w", err)
	}
	return &cResp, nil
}

func (g *GroqBackend) model() string {
	if g.Config.Model != "" {
		return g.Config.Model
	}
	return defaultModel
}

func (g *GroqBackend) temperature() float64 {
	if g.Config.Temperature > 0 {
		return g.Config.Temperature
	}
	return defaultTemperature
}
