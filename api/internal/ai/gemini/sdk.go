package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"bfhl/api/internal/ai"
)

// SDKEngine calls Gemini through the generative-ai-go client.
type SDKEngine struct {
	APIKey string
	Model  string
	opts   []option.ClientOption
}

func NewSDK(key, model string, opts ...option.ClientOption) *SDKEngine {
	return &SDKEngine{
		APIKey: strings.TrimSpace(key),
		Model:  strings.TrimSpace(model),
		opts:   opts,
	}
}

// WithBaseURL points the client at baseURL. The SDK adds the API version
// itself, so a trailing /v1beta or /v1 is dropped.
func (e *SDKEngine) WithBaseURL(baseURL string) *SDKEngine {
	if ep := sdkEndpoint(baseURL); ep != "" {
		e.opts = append(e.opts, option.WithEndpoint(ep))
	}
	return e
}

func sdkEndpoint(baseURL string) string {
	u := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	for _, v := range []string{"/v1beta", "/v1"} {
		if strings.HasSuffix(u, v) {
			return strings.TrimSuffix(u, v)
		}
	}
	return u
}

func (e *SDKEngine) Name() string     { return name }
func (e *SDKEngine) GetModel() string { return e.Model }

func (e *SDKEngine) Ask(ctx context.Context, question string) (string, error) {
	if e.APIKey == "" {
		return "", &ai.ConfigError{Provider: name, Key: "GEMINI_API_KEY"}
	}
	opts := append([]option.ClientOption{option.WithAPIKey(e.APIKey)}, e.opts...)
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("gemini sdk: new client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini sdk: model is nil")
	}
	resp, err := m.GenerateContent(ctx, genai.Text(question))
	if err != nil {
		return "", sdkError(err)
	}
	return sdkText(resp), nil
}

func sdkError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		// A blocked prompt is a reply without text, not a failure.
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &ai.ProviderError{Provider: name, StatusCode: gerr.Code, Body: gerr.Message}
	}
	return fmt.Errorf("gemini sdk: %w", err)
}

// sdkText joins the text parts of the first candidate with spaces.
func sdkText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	texts := make([]string, 0, len(c.Content.Parts))
	for _, p := range c.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			texts = append(texts, string(t))
		}
	}
	return strings.Join(texts, " ")
}
