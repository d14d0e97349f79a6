package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bfhl/api/internal/ai"
)

func TestEngine_Ask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected key query param, got %q", got)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header")
		}

		var req generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Role != "user" || req.Contents[0].Parts[0].Text != "capital of France?" {
			t.Errorf("unexpected payload: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Paris."},{"text":"It is"}]}},{"content":{"parts":[{"text":"ignored"}]}}]}`))
	}))
	defer server.Close()

	e := New("test-key", "gemini-1.5-flash", server.URL)
	got, err := e.Ask(context.Background(), "capital of France?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "Paris. It is" {
		t.Errorf("Ask = %q, want %q", got, "Paris. It is")
	}
}

func TestEngine_Ask_MissingKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := New("  ", "gemini-1.5-flash", server.URL).Ask(context.Background(), "q")
	var cerr *ai.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cerr.Key != "GEMINI_API_KEY" {
		t.Errorf("ConfigError.Key = %q", cerr.Key)
	}
	if called {
		t.Error("provider must not be called without a key")
	}
}

func TestEngine_Ask_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota"}}`))
	}))
	defer server.Close()

	_, err := New("k", "m", server.URL).Ask(context.Background(), "q")
	var perr *ai.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", perr.StatusCode)
	}
	if strings.Contains(perr.Error(), "quota") {
		t.Errorf("error text must not carry the provider body: %q", perr.Error())
	}
	if perr.Body != "quota" {
		t.Errorf("Body = %q, want the provider message", perr.Body)
	}
}

func TestEngine_Ask_TransportErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New("secret-key", "m", url).Ask(context.Background(), "q")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Errorf("error leaks the key: %v", err)
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"single part", `{"candidates":[{"content":{"parts":[{"text":"Yes"}]}}]}`, "Yes"},
		{"no candidates", `{"candidates":[]}`, ""},
		{"no content", `{"candidates":[{}]}`, ""},
		{"missing text", `{"candidates":[{"content":{"parts":[{},{"text":"b"}]}}]}`, " b"},
		{"mistyped text", `{"candidates":[{"content":{"parts":[{"text":"Paris"},{"text":5}]}}]}`, "Paris "},
		{"mistyped part", `{"candidates":[{"content":{"parts":["x",{"text":"Rome"}]}}]}`, " Rome"},
		{"mistyped content", `{"candidates":[{"content":7}]}`, ""},
		{"cut off", `{"candidates":[{"content":{"parts":[{"text":"Paris`, ""},
		{"trailing comma", `{"candidates":[{"content":{"parts":[{"text":"Paris"},]}}]}`, ""},
		{"not json", `<html>oops</html>`, ""},
		{"wrong shape", `{"candidates":"nope"}`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractText([]byte(tt.raw)); got != tt.want {
				t.Errorf("extractText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_Ask_CutOffReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Paris`))
	}))
	defer server.Close()

	got, err := New("k", "gemini-1.5-flash", server.URL).Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("a cut-off reply is not an error: %v", err)
	}
	if got != "" {
		t.Errorf("Ask = %q, want empty", got)
	}
}
