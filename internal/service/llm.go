package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/healthara/backend/config"
)

// NewChatClient builds the client for the configured provider
func NewChatClient(ctx context.Context, cfg *config.Config) (ChatClient, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMMaxTokens, cfg.LLMTemperature)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderAzure, config.ProviderOpenAI:
		client, err := NewOpenAIClient(OpenAIConfig{
			APIKey:      cfg.LLMAPIKey,
			Endpoint:    cfg.LLMEndpoint,
			APIVersion:  cfg.LLMAPIVersion,
			Model:       cfg.LLMModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			Azure:       cfg.LLMProvider == config.ProviderAzure,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s", cfg.LLMProvider)
	}
}

// OpenAIConfig configures an OpenAI-compatible chat completions endpoint
type OpenAIConfig struct {
	APIKey      string
	Endpoint    string
	APIVersion  string
	Model       string
	MaxTokens   int
	Temperature float64
	// Azure selects deployment-style URLs and the api-key header
	Azure      bool
	HTTPClient *http.Client
}

// OpenAIClient talks to Azure OpenAI or any OpenAI-compatible API with server-sent events
type OpenAIClient struct {
	cfg    OpenAIConfig
	url    string
	client *http.Client
}

var _ ChatClient = (*OpenAIClient)(nil)

// NewOpenAIClient creates a new OpenAIClient instance
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("chat API key must be set")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("chat API endpoint must be set")
	}

	base := strings.TrimRight(cfg.Endpoint, "/")
	apiURL := base + "/chat/completions"
	if cfg.Azure {
		apiURL = fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			base, url.PathEscape(cfg.Model), url.QueryEscape(cfg.APIVersion))
	}

	client := cfg.HTTPClient
	if client == nil {
		// Only the wait for response headers is bounded; the stream itself may run for minutes.
		client = &http.Client{Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ResponseHeaderTimeout: 60 * time.Second,
		}}
	}

	return &OpenAIClient{cfg: cfg, url: apiURL, client: client}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type completionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// StreamChat sends the request with stream=true and relays content deltas
func (c *OpenAIClient) StreamChat(ctx context.Context, req ChatRequest, onDelta func(string)) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserMessage},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if c.cfg.Azure {
		httpReq.Header.Set("api-key", c.cfg.APIKey)
	} else {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, errorMessage(raw))
	}

	return readEventStream(resp.Body, onDelta)
}

// readEventStream consumes "data:" lines until [DONE] or EOF
func readEventStream(r io.Reader, onDelta func(string)) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var full strings.Builder
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			return full.String(), nil
		}

		var chunk completionChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return full.String(), fmt.Errorf("failed to decode stream chunk: %w", err)
		}
		if chunk.Error != nil {
			return full.String(), fmt.Errorf("chat API error: %s", chunk.Error.Message)
		}
		for _, choice := range chunk.Choices {
			if delta := choice.Delta.Content; delta != "" {
				full.WriteString(delta)
				if onDelta != nil {
					onDelta(delta)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("failed to read stream: %w", err)
	}
	return full.String(), nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Error apiError `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
