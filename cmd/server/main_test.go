package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alghazali/school-assistant/internal/config"
	"github.com/alghazali/school-assistant/internal/conversation"
)

func TestNewGeneratorFallsBackWithoutAPIKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{}
	cfg.LLM.Model = "gemini-2.0-flash"
	cfg.LLM.MaxOutputTokens = 1024

	gen := newGenerator(context.Background(), cfg, logger)
	unavailable, ok := gen.(conversation.UnavailableGenerator)
	if !ok {
		t.Fatalf("expected UnavailableGenerator, got %T", gen)
	}
	if unavailable.Cause == nil {
		t.Fatalf("expected the construction error to be kept as the cause")
	}
	if _, err := gen.Generate(context.Background(), "hello"); conversation.ReasonOf(err) != conversation.FailureUnavailable {
		t.Fatalf("expected unavailable reason, got %v", err)
	}
}

func TestNewGeneratorUsesGemini(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{}
	cfg.LLM.APIKey = "key"

	gen := newGenerator(context.Background(), cfg, logger)
	if _, ok := gen.(*conversation.GeminiGenerator); !ok {
		t.Fatalf("expected GeminiGenerator, got %T", gen)
	}
}
