package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Analyzer requests a structured sentiment report for a crypto project from a
// hosted chat-completion endpoint.
type Analyzer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewAnalyzer(opts Options) (*Analyzer, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("analysis: api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Analyzer{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  client,
	}, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze returns the four-section sentiment report for the named project.
func (a *Analyzer) Analyze(ctx context.Context, projectName string) (string, error) {
	trimmed := strings.TrimSpace(projectName)
	if trimmed == "" {
		return "", errors.New("analysis: project name required")
	}
	payload := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "user", Content: analysisPrompt(trimmed)},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("analysis: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", fmt.Errorf("analysis: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("analysis: chat request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("analysis: chat endpoint status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("analysis: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("analysis: no choices in response")
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("analysis: empty response")
	}
	return text, nil
}

func analysisPrompt(projectName string) string {
	return fmt.Sprintf(`Analyze %s in the following format:

SYMBOL: [Trading Symbol]

Market Position:
- Brief overview of current market position (2-3 sentences)
- Key competitive advantages/challenges

Sentiment Analysis:
- Current market sentiment (bullish/bearish/neutral)
- Key factors influencing sentiment
- Risk assessment (Low/Medium/High)

Recommendation:
- Clear investment stance (Buy/Sell/Hold)
- Brief justification for recommendation`, projectName)
}
