package conversation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alghazali/school-assistant/internal/metrics"
)

const defaultGenerationTimeout = 30 * time.Second

// Options tunes a Service. Zero values pick defaults.
type Options struct {
	Persona           string
	GenerationTimeout time.Duration
	Logger            *slog.Logger
	Metrics           *metrics.Metrics
}

// Service answers parent messages: detect language, build the prompt from
// recent history, generate, and record the exchange on success.
type Service struct {
	store     *Store
	generator Generator
	persona   string
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	locks     userLocks
	now       func() time.Time
}

// NewService wires the reply service with its store and generator.
func NewService(store *Store, generator Generator, opts Options) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if generator == nil {
		generator = UnavailableGenerator{Cause: errors.New("no generator configured")}
	}
	persona := opts.Persona
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}
	timeout := opts.GenerationTimeout
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		generator: generator,
		persona:   persona,
		timeout:   timeout,
		logger:    logger,
		metrics:   opts.Metrics,
		locks:     userLocks{held: make(map[string]*userLock)},
		now:       time.Now,
	}, nil
}

// Reply returns the text to send back to userID. It never fails: generation
// errors are logged and answered with FallbackReply, and nothing is recorded.
// Turns for the same user are serialized; different users run in parallel.
func (s *Service) Reply(ctx context.Context, userMessage, userID string) string {
	unlock := s.locks.lock(userID)
	defer unlock()

	lang := DetectLanguage(userMessage)
	history := s.store.Recent(userID, PromptWindow)
	prompt := BuildPrompt(s.persona, history, userMessage, lang)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := s.now()
	reply, err := s.generator.Generate(genCtx, prompt)
	s.metrics.ObserveGeneration(s.now().Sub(started))
	if err == nil && strings.TrimSpace(reply) == "" {
		err = &GenerationError{Reason: FailureEmptyResponse}
	}
	if err != nil {
		s.logger.Error("generation failed",
			slog.String("user", userID),
			slog.String("language", string(lang)),
			slog.String("reason", string(ReasonOf(err))),
			slog.Any("error", err),
		)
		s.metrics.RecordReply("fallback")
		return FallbackReply
	}

	s.store.Append(userID, Exchange{
		ID:             uuid.NewString(),
		UserMessage:    userMessage,
		AssistantReply: reply,
		CreatedAt:      s.now().UTC(),
	})
	s.metrics.RecordReply("generated")
	s.metrics.SetTrackedUsers(s.store.Users())
	s.logger.Debug("reply generated",
		slog.String("user", userID),
		slog.String("language", string(lang)),
		slog.Int("history", len(history)),
	)
	return reply
}

// Recent exposes the store's windowed read for operator tooling.
func (s *Service) Recent(userID string, n int) []Exchange {
	return s.store.Recent(userID, n)
}

// userLocks hands out one mutex per user id and drops it once no caller holds or waits on it.
type userLocks struct {
	mu   sync.Mutex
	held map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	ul, ok := l.held[userID]
	if !ok {
		ul = &userLock{}
		l.held[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.held, userID)
		}
		l.mu.Unlock()
	}
}
