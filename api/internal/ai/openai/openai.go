package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"bfhl/api/internal/ai"
	"bfhl/api/internal/util"
)

const (
	name            = "openai"
	DefaultBaseURL  = "https://api.openai.com/v1"
	maxOutputTokens = 16
	maxBody         = 1 << 20
)

// Engine calls the Responses API with a bearer token.
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
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
	}
	return &Engine{
		APIKey:  strings.TrimSpace(key),
		Model:   strings.TrimSpace(model),
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 60 * time.Second, Transport: tr},
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

type responsesRequest struct {
	Model           string `json:"model"`
	Input           string `json:"input"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

// Nested items stay raw so one bad field only blanks itself.
type responsesEnvelope struct {
	Output []json.RawMessage `json:"output"`
}

type outputItem struct {
	Content []json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type json.RawMessage `json:"type"`
	Text json.RawMessage `json:"text"`
}

func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	if e.APIKey == "" {
		return "", &ai.ConfigError{Provider: name, Key: "OPENAI_API_KEY"}
	}

	payload, err := json.Marshal(responsesRequest{
		Model:           e.Model,
		Input:           question,
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &ai.ProviderError{Provider: name, StatusCode: resp.StatusCode, Body: util.ErrorMessage(x, 256)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("openai: read body: %w", err)
	}
	return extractResponsesText(raw), nil
}

// extractResponsesText concatenates every output[i].content[j] block of type
// output_text, each followed by a space. A body that is not valid JSON yields "";
// a missing or mistyped text counts as empty.
func extractResponsesText(raw []byte) string {
	var env responsesEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	var b strings.Builder
	for _, ro := range env.Output {
		var o outputItem
		_ = json.Unmarshal(ro, &o)
		for _, rc := range o.Content {
			var c contentBlock
			_ = json.Unmarshal(rc, &c)
			if util.StringField(c.Type) != "output_text" {
				continue
			}
			b.WriteString(util.StringField(c.Text))
			b.WriteByte(' ')
		}
	}
	return b.String()
}
