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

	"bfhl/api/internal/ai"
	"bfhl/api/internal/util"
)

const (
	name           = "gemini"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	maxBody        = 1 << 20
)

// Engine calls generateContent over REST with the key as a query parameter.
type Engine struct {
	APIKey  string
	Model   string
	BaseURL string
	httpc   *http.Client
}

func New(key, model, baseURL string) *Engine {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Engine{
		APIKey:  strings.TrimSpace(key),
		Model:   strings.TrimSpace(model),
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient overrides the internal HTTP client.
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) Name() string     { return name }
func (e *Engine) GetModel() string { return e.Model }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

// Response fields below the top level stay raw so one bad field only blanks itself.
type generateContentResponse struct {
	Candidates []json.RawMessage `json:"candidates"`
}

type candidateResponse struct {
	Content json.RawMessage `json:"content"`
}

type contentResponse struct {
	Parts []json.RawMessage `json:"parts"`
}

type partResponse struct {
	Text json.RawMessage `json:"text"`
}

func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	if e.APIKey == "" {
		return "", &ai.ConfigError{Provider: name, Key: "GEMINI_API_KEY"}
	}

	payload, err := json.Marshal(generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: question}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}
	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		e.BaseURL, url.PathEscape(e.Model), url.QueryEscape(e.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", redactKey(err, e.APIKey))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &ai.ProviderError{Provider: name, StatusCode: resp.StatusCode, Body: util.ErrorMessage(x, 256)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("gemini: read body: %w", err)
	}
	return extractText(raw), nil
}

// extractText joins the text parts of the first candidate with spaces.
// A body that is not valid JSON yields "". Below the top level, a missing
// or mistyped field counts as empty and the rest is still read.
func extractText(raw []byte) string {
	var out generateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil || len(out.Candidates) == 0 {
		return ""
	}
	var (
		cand candidateResponse
		body contentResponse
	)
	_ = json.Unmarshal(out.Candidates[0], &cand)
	_ = json.Unmarshal(cand.Content, &body)

	texts := make([]string, 0, len(body.Parts))
	for _, rp := range body.Parts {
		var p partResponse
		_ = json.Unmarshal(rp, &p)
		texts = append(texts, util.StringField(p.Text))
	}
	return strings.Join(texts, " ")
}

// redactKey strips the API key from url.Error, which embeds the full request URL.
func redactKey(err error, key string) error {
	var ue *url.Error
	if key == "" || !errors.As(err, &ue) {
		return err
	}
	ue.URL = strings.ReplaceAll(ue.URL, url.QueryEscape(key), "REDACTED")
	return ue
}
