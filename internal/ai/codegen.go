package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned before any network attempt when no credential
// is configured.
var ErrMissingAPIKey = errors.New("llm api key is not configured")

const systemInstruction = "You are a Streamlit expert. Produce ONLY runnable Python code. " +
	"Start with st.set_page_config. Use a modern UI. Code only, no prose, no explanations."

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CodegenConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// GenerationError collapses every remote failure mode (transport error,
// non-success status, malformed payload) into one displayable message.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

// CodegenClient calls an OpenAI-compatible chat-completions endpoint and
// normalizes the answer into bare source text.
type CodegenClient struct {
	httpClient *http.Client
}

func NewCodegenClient(timeout time.Duration) *CodegenClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &CodegenClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *CodegenClient) Generate(ctx context.Context, cfg CodegenConfig, prompt string) (string, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := map[string]interface{}{
		"model": cfg.Model,
		"messages": []ChatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: "Create a Streamlit app: " + prompt},
		},
		"temperature": cfg.Temperature,
		"max_tokens":  cfg.MaxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal llm request failed: %w", err)
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("build llm request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Message: fmt.Sprintf("llm request failed: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Message: fmt.Sprintf("read llm response failed: %v", err)}
	}
	if resp.StatusCode >= 300 {
		return "", &GenerationError{Message: fmt.Sprintf("llm response status %d: %s", resp.StatusCode, string(raw))}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &GenerationError{Message: fmt.Sprintf("parse llm json failed: %v", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &GenerationError{Message: "empty llm choices"}
	}

	return StripCodeFence(parsed.Choices[0].Message.Content), nil
}
