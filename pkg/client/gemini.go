package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GeminiClient calls the hosted generative-language API's
// generateContent endpoint. The relay owns the API key; it is never
// shipped to the mobile client.
type GeminiClient struct {
	http   *HttpClient
	apiKey string
	model  string
}

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []GeminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []GeminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewGeminiClient(baseURL, apiKey, model string) *GeminiClient {
	return &GeminiClient{
		http:   NewHttpClient(baseURL),
		apiKey: apiKey,
		model:  model,
	}
}

// GenerateContent sends the conversation and returns the first
// candidate's text.
func (c *GeminiClient) GenerateContent(ctx context.Context, contents []GeminiContent) (string, error) {
	path := fmt.Sprintf("/v1beta/models/%s:generateContent?key=%s", c.model, url.QueryEscape(c.apiKey))

	resp, err := c.http.POST(ctx, path, generateContentRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generative language API returned status %d", resp.StatusCode)
	}

	var decoded generateContentResponse
	if err := resp.DecodeJSON(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode generateContent response: %w", err)
	}

	// A 200 with no candidates is a valid "nothing to say" response;
	// callers substitute their own fallback text.
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
