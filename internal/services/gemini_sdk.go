package services

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiSDKClient is the Generator backed by the official Go SDK. It keeps the
// same single-turn, first-candidate contract as GeminiClient.
type GeminiSDKClient struct {
	client  *genai.Client
	timeout time.Duration

	generate func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

// NewGeminiSDKClient dials the API. A non-default baseURL is passed to the SDK
// as its endpoint; timeout bounds every Generate call.
func NewGeminiSDKClient(ctx context.Context, apiKey, baseURL, model string, timeout time.Duration) (*GeminiSDKClient, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint := sdkEndpoint(baseURL); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	gm := client.GenerativeModel(model)
	return &GeminiSDKClient{
		client:  client,
		timeout: timeout,
		generate: func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
			return gm.GenerateContent(ctx, genai.Text(prompt))
		},
	}, nil
}

// sdkEndpoint turns a REST base URL into the host:port the SDK dials.
// The default base URL yields "" so the SDK keeps its own endpoint.
func sdkEndpoint(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" || baseURL == DefaultGeminiBaseURL {
		return ""
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Port() == "" {
		return net.JoinHostPort(u.Hostname(), "443")
	}
	return u.Host
}

func (s *GeminiSDKClient) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *GeminiSDKClient) Generate(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.generate(ctx, prompt)
	if err != nil {
		return "", &ProviderError{Reason: "request failed", Err: err}
	}
	return sdkCandidateText(resp)
}

func sdkCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &ProviderError{Reason: "invalid response format: no candidates"}
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", &ProviderError{Reason: "invalid response format: candidate has no content"}
	}
	if len(cand.Content.Parts) == 0 {
		return "", &ProviderError{Reason: "invalid response format: content has no parts"}
	}
	text, ok := cand.Content.Parts[0].(genai.Text)
	if !ok || text == "" {
		return "", &ProviderError{Reason: "invalid response format: first part has no text"}
	}
	return string(text), nil
}
