// Package gemini implements the backend.Backend interface for Google's
// Gemini generateContent REST API, including the multimodal (image) path.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/hamza-els/CalHacks/internal/backend"
	"github.com/hamza-els/CalHacks/internal/backend/httpclient"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

func init() {
	backend.Register("gemini", New)
}

// Backend calls the Gemini generateContent endpoint.
type Backend struct {
	client *httpclient.Client
}

// New creates a Gemini backend from settings.
func New(s backend.Settings) (backend.Backend, error) {
	if s.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	base := s.Endpoint
	if base == "" {
		base = defaultBaseURL
	}
	// Vision extraction can run for minutes; the per-attempt context is
	// the only request deadline.
	return &Backend{
		client: httpclient.New(base,
			httpclient.WithHeader("x-goog-api-key", s.APIKey),
			httpclient.WithTimeout(0),
		),
	}, nil
}

// Generation settings tuned for structured extraction: low temperature,
// enough output budget for a full term's worth of events.
var extractionConfig = generationConfig{
	Temperature:     0.1,
	TopP:            0.8,
	TopK:            40,
	MaxOutputTokens: 8192,
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate runs one completion attempt against the given model identifier.
// Model identifiers are resource names like "models/gemini-2.5-flash".
func (b *Backend) Generate(ctx context.Context, model string, req backend.Request) (string, error) {
	parts := []part{{Text: req.Prompt}}
	if len(req.ImageData) > 0 {
		mime := req.ImageMIME
		if mime == "" {
			mime = "image/png"
		}
		parts = append(parts, part{InlineData: &inlineData{
			MIMEType: mime,
			Data:     base64.StdEncoding.EncodeToString(req.ImageData),
		}})
	}

	body := generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: extractionConfig,
	}

	var resp generateResponse
	if err := b.client.PostJSON(ctx, "/"+model+":generateContent", body, &resp); err != nil {
		return "", fmt.Errorf("gemini: %s: %w", model, err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: %s: empty response", model)
	}

	text := ""
	for _, p := range resp.Candidates[0].Content.Parts {
		text += p.Text
	}
	return text, nil
}
