package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"

	"bfhl/api/internal/ai"
)

func TestSDKEngine_MissingKey(t *testing.T) {
	_, err := NewSDK("", "gemini-1.5-flash").Ask(context.Background(), "q")
	var cerr *ai.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestSDKEngine_Ask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected key query param, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Paris."},{"text":"It is"}]}}]}`))
	}))
	defer server.Close()

	e := NewSDK("test-key", "gemini-1.5-flash").WithBaseURL(server.URL + "/v1beta")
	got, err := e.Ask(context.Background(), "capital of France?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "Paris. It is" {
		t.Errorf("Ask = %q, want %q", got, "Paris. It is")
	}
}

func TestSDKEngine_Ask_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	_, err := NewSDK("bad-key", "gemini-1.5-flash").WithBaseURL(server.URL).Ask(context.Background(), "q")
	var perr *ai.ProviderError
	if !errors.As(err, &perr) || perr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected ProviderError 403, got %v", err)
	}
}

func TestSDKEndpoint(t *testing.T) {
	tests := map[string]string{
		"https://generativelanguage.googleapis.com/v1beta":  "https://generativelanguage.googleapis.com",
		"https://generativelanguage.googleapis.com/v1beta/": "https://generativelanguage.googleapis.com",
		"http://127.0.0.1:8089/v1":                          "http://127.0.0.1:8089",
		"http://127.0.0.1:8089":                             "http://127.0.0.1:8089",
		"":                                                  "",
	}
	for in, want := range tests {
		if got := sdkEndpoint(in); got != want {
			t.Errorf("sdkEndpoint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSDKText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Blue"), &genai.Blob{MIMEType: "image/png"}, genai.Text("sky")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("other")}}},
		},
	}
	if got := sdkText(resp); got != "Blue sky" {
		t.Errorf("sdkText = %q, want %q", got, "Blue sky")
	}
	if got := sdkText(nil); got != "" {
		t.Errorf("sdkText(nil) = %q", got)
	}
	if got := sdkText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}); got != "" {
		t.Errorf("sdkText without content = %q", got)
	}
}

func TestSDKError(t *testing.T) {
	if err := sdkError(&genai.BlockedError{}); err != nil {
		t.Errorf("blocked prompt should not be an error, got %v", err)
	}

	err := sdkError(&googleapi.Error{Code: http.StatusForbidden, Message: "denied"})
	var perr *ai.ProviderError
	if !errors.As(err, &perr) || perr.StatusCode != http.StatusForbidden {
		t.Errorf("expected ProviderError 403, got %v", err)
	}

	err = sdkError(context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped deadline error, got %v", err)
	}
}
