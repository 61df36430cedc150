package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-2.0-flash"

	headerAPIKey      = "X-goog-api-key"
	headerContentType = "Content-Type"
	mimeJSON          = "application/json"

	// upper bound on how much of an error body is read for logging
	maxErrorBody = 4 << 10
)

// GeminiClient calls the generateContent REST endpoint directly. Each call is
// a single-turn request: only the prompt is sent, never earlier turns.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, baseURL, model string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponsePart struct {
	Text *string `json:"text"`
}

type geminiResponseContent struct {
	Parts []geminiResponsePart `json:"parts"`
}

type geminiCandidate struct {
	Content *geminiResponseContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

func (c *GeminiClient) endpoint() string {
	return c.baseURL + "/models/" + url.PathEscape(c.model) + ":generateContent"
}

// Generate sends prompt as one content part and returns the text of the first
// candidate.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", &ProviderError{Reason: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Reason: "build request", Err: err}
	}
	req.Header.Set(headerContentType, mimeJSON)
	req.Header.Set(headerAPIKey, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Printf("Gemini API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
		return "", &ProviderError{StatusCode: resp.StatusCode, Reason: "unexpected status"}
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ProviderError{StatusCode: resp.StatusCode, Reason: "decode response", Err: err}
	}

	return firstCandidateText(parsed)
}

// firstCandidateText accepts exactly candidates[0].content.parts[0].text.
func firstCandidateText(resp geminiResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ProviderError{Reason: "invalid response format: no candidates"}
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", &ProviderError{Reason: "invalid response format: candidate has no content"}
	}
	if len(content.Parts) == 0 {
		return "", &ProviderError{Reason: "invalid response format: content has no parts"}
	}
	text := content.Parts[0].Text
	if text == nil || *text == "" {
		return "", &ProviderError{Reason: "invalid response format: first part has no text"}
	}
	return *text, nil
}
