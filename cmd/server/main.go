package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/alghazali/school-assistant/internal/config"
	"github.com/alghazali/school-assistant/internal/conversation"
	"github.com/alghazali/school-assistant/internal/httpapi"
	"github.com/alghazali/school-assistant/internal/keepalive"
	"github.com/alghazali/school-assistant/internal/metrics"
	"github.com/alghazali/school-assistant/internal/shared/auth"
	"github.com/alghazali/school-assistant/internal/shared/logging"
	sharedserver "github.com/alghazali/school-assistant/internal/shared/server"
	"github.com/alghazali/school-assistant/internal/whatsapp"
)

const serviceName = "school-assistant"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLoggerWithLevel(serviceName, cfg.LogLevel)
	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		panic(err)
	}
}

// newGenerator builds the Gemini generator. Startup continues without one:
// every reply then takes the fallback path and the cause is logged once here.
func newGenerator(ctx context.Context, cfg config.Config, logger *slog.Logger) conversation.Generator {
	gemini, err := conversation.NewGeminiGenerator(ctx, conversation.GeminiConfig{
		APIKey:          cfg.LLM.APIKey,
		Model:           cfg.LLM.Model,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		UseVertex:       cfg.LLM.UseVertex,
		Project:         cfg.LLM.Project,
		Location:        cfg.LLM.Location,
	})
	if err != nil {
		logger.Warn("gemini unavailable, every reply will use the fallback text", slog.String("reason", err.Error()))
		return conversation.UnavailableGenerator{Cause: err}
	}
	return gemini
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	m := metrics.New()

	persona, err := conversation.LoadPersona(cfg.LLM.PersonaFile)
	if err != nil {
		return err
	}

	generator := newGenerator(ctx, cfg, logger)

	store := conversation.NewStore()
	replies, err := conversation.NewService(store, generator, conversation.Options{
		Persona:           persona,
		GenerationTimeout: cfg.LLM.GenerationTimeout,
		Logger:            logger,
		Metrics:           m,
	})
	if err != nil {
		return fmt.Errorf("reply service init error: %w", err)
	}

	sender := whatsapp.NewClient(nil, whatsapp.Config{
		BaseURL:       cfg.WhatsApp.BaseURL,
		APIVersion:    cfg.WhatsApp.APIVersion,
		PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		Token:         cfg.WhatsApp.Token,
	})

	verifier, err := auth.NewVerifier(auth.Config{
		Mode:     cfg.Auth.Mode,
		JWKSURL:  cfg.Auth.JWKSURL,
		Audience: cfg.Auth.Audience,
		Issuer:   cfg.Auth.Issuer,
	})
	if err != nil {
		return fmt.Errorf("auth verifier error: %w", err)
	}

	webhook := httpapi.NewWebhookHandler(replies, sender, cfg.WhatsApp.VerifyToken, logger, m)
	router := sharedserver.NewRouter(serviceName, func(r chi.Router) {
		httpapi.RegisterRoutes(r, webhook)
		r.Handle("/metrics", m.Handler())
		if verifier != nil {
			httpapi.RegisterOperatorRoutes(r, verifier, replies)
		}
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	pinger := keepalive.New(cfg.KeepAlive.SelfURL, cfg.KeepAlive.Interval, logger, m)

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		defer stop()
		if err := sharedserver.Run(serveCtx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return pinger.Run(serveCtx)
	})

	return g.Wait()
}
