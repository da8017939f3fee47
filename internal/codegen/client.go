// Package codegen calls the generative model to synthesize React Native
// screens and applies a heuristic acceptance check on the output.
package codegen

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
)

const systemPrompt = "You are a senior mobile UI developer. Generate a clean, production-ready React Native screen using functional components and Tailwind CSS (via nativewind). " +
	"Do not use class components. Avoid verbose code. Based on the following user prompt, return only the complete code file with proper imports, styles, and structure. " +
	"Do not include explanations, comments, or web components like <div>."

type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o"
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends a single chat-completions request and returns the validated
// code text. A rejected response is surfaced as a validation error without
// retrying.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	b, _ := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   1800,
		Temperature: 0.2,
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", apierr.Downstreamf("model request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", apierr.Downstreamf("model request failed").WithDetails(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", apierr.Downstreamf("model error (status %d)", resp.StatusCode).WithDetails(string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apierr.Downstreamf("model decode").WithDetails(err.Error())
	}
	if len(out.Choices) == 0 {
		return "", apierr.Downstreamf("model returned no choices")
	}

	code := out.Choices[0].Message.Content
	if err := Validate(code); err != nil {
		return "", err
	}
	return code, nil
}
