package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newGeminiBackend(t *testing.T, handler func(w http.ResponseWriter, body map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusNotFound)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		handler(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewGeminiGeneratorRequiresCredentials(t *testing.T) {
	if _, err := NewGeminiGenerator(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected missing api key to fail")
	}
	if _, err := NewGeminiGenerator(context.Background(), GeminiConfig{UseVertex: true}); err == nil {
		t.Fatal("expected missing vertex project to fail")
	}
	if _, err := NewGeminiGenerator(context.Background(), GeminiConfig{UseVertex: true, Project: "p"}); err == nil {
		t.Fatal("expected missing vertex location to fail")
	}
}

func TestGeminiClientConfig(t *testing.T) {
	cc, err := GeminiConfig{APIKey: " key ", BaseURL: "http://127.0.0.1:1"}.clientConfig()
	if err != nil {
		t.Fatalf("api key config: %v", err)
	}
	if cc.Backend != genai.BackendGeminiAPI || cc.APIKey != "key" || cc.HTTPOptions.BaseURL != "http://127.0.0.1:1" {
		t.Fatalf("unexpected api key client config %+v", cc)
	}

	cc, err = GeminiConfig{UseVertex: true, APIKey: "ignored", Project: "school-prod", Location: "us-central1"}.clientConfig()
	if err != nil {
		t.Fatalf("vertex config: %v", err)
	}
	if cc.Backend != genai.BackendVertexAI || cc.Project != "school-prod" || cc.Location != "us-central1" || cc.APIKey != "" {
		t.Fatalf("unexpected vertex client config %+v", cc)
	}
}

func TestGeminiGeneratorDefaults(t *testing.T) {
	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	if gen.model != defaultGeminiModel || gen.maxTokens != defaultGeminiMaxTokens {
		t.Fatalf("unexpected defaults %s / %d", gen.model, gen.maxTokens)
	}
}

func TestGeminiGeneratorGenerate(t *testing.T) {
	var sent string
	srv := newGeminiBackend(t, func(w http.ResponseWriter, body map[string]any) {
		raw, _ := json.Marshal(body["contents"])
		sent = string(raw)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":" 8 AM to 2:10 PM \n"}]}}]}`)
	})

	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	got, err := gen.Generate(context.Background(), "What are the school timings?")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "8 AM to 2:10 PM" {
		t.Fatalf("unexpected reply %q", got)
	}
	if !strings.Contains(sent, "What are the school timings?") {
		t.Fatalf("prompt not sent as content: %s", sent)
	}
}

func TestGeminiGeneratorFailures(t *testing.T) {
	empty := newGeminiBackend(t, func(w http.ResponseWriter, _ map[string]any) {
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	})
	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{APIKey: "k", BaseURL: empty.URL})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	_, err = gen.Generate(context.Background(), "hi")
	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Reason != FailureEmptyResponse {
		t.Fatalf("expected empty_response, got %v", err)
	}

	failing := newGeminiBackend(t, func(w http.ResponseWriter, _ map[string]any) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
	})
	gen, err = NewGeminiGenerator(context.Background(), GeminiConfig{APIKey: "k", BaseURL: failing.URL})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	_, err = gen.Generate(context.Background(), "hi")
	if !errors.As(err, &genErr) || genErr.Reason != FailureRequest {
		t.Fatalf("expected request failure, got %v", err)
	}
}
