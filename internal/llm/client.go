// Package llm talks to a local Ollama-style chat completion endpoint and
// extracts structured payloads from free-text model output.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Message is one entry in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Client sends chat completion requests to a fixed endpoint and model.
type Client struct {
	url    string
	model  string
	client *http.Client
}

// New creates a chat client.
func New(url, model string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

// Chat sends a system prompt and a user prompt and returns the raw message
// content. The content is opaque text; callers extract what they need from it.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("parsing chat response: %w", err)
	}

	if decoded.Message.Content == "" {
		return "", fmt.Errorf("chat response contained no content")
	}

	return decoded.Message.Content, nil
}
