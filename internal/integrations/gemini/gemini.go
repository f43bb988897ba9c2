package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"church-app-go/internal/config"
	versedomain "church-app-go/internal/domain/verse"
)

var ErrNotConfigured = errors.New("gemini: api key not configured")

const prompt = `Pick one encouraging Bible verse for %s. Answer with JSON only: {"reference": "Book chapter:verse", "text": "verse text in Korean"}`

// Generator asks the Gemini generateContent endpoint for a daily verse.
type Generator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type versePayload struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

func New(cfg config.VerseConfig) *Generator {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Generator{
		baseURL: strings.TrimRight(cfg.GeminiURL, "/"),
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *Generator) Generate(ctx context.Context, day time.Time) (versedomain.Verse, error) {
	if g.apiKey == "" {
		return versedomain.Verse{}, ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: fmt.Sprintf(prompt, day.Format("2006-01-02"))}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json", Temperature: 0.7},
	})
	if err != nil {
		return versedomain.Verse{}, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return versedomain.Verse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return versedomain.Verse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return versedomain.Verse{}, fmt.Errorf("gemini: status %d: %s", resp.StatusCode, snippet)
	}

	var payload generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return versedomain.Verse{}, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return versedomain.Verse{}, errors.New("gemini: empty response")
	}

	parsed, err := parseVerse(payload.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return versedomain.Verse{}, err
	}

	return versedomain.Verse{
		Reference: parsed.Reference,
		Text:      parsed.Text,
		Date:      day.Format("2006-01-02"),
		Source:    versedomain.SourceGenerated,
	}, nil
}

// parseVerse accepts bare JSON or JSON wrapped in a markdown code fence.
func parseVerse(raw string) (versePayload, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var parsed versePayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return versePayload{}, fmt.Errorf("gemini: decode verse: %w", err)
	}
	parsed.Reference = strings.TrimSpace(parsed.Reference)
	parsed.Text = strings.TrimSpace(parsed.Text)
	if parsed.Reference == "" || parsed.Text == "" {
		return versePayload{}, errors.New("gemini: incomplete verse")
	}
	return parsed, nil
}
