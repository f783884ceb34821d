package keepalive

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alghazali/school-assistant/internal/metrics"
)

const (
	defaultInterval = 5 * time.Minute
	pingTimeout     = 30 * time.Second
)

// Pinger periodically requests the service's own /health endpoint so that
// hosts which suspend idle processes keep it running.
type Pinger struct {
	target   string
	interval time.Duration
	client   *http.Client
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New returns a pinger for selfURL. An empty selfURL yields a pinger whose Run returns immediately.
func New(selfURL string, interval time.Duration, logger *slog.Logger, m *metrics.Metrics) *Pinger {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	target := ""
	if base := strings.TrimRight(strings.TrimSpace(selfURL), "/"); base != "" {
		target = base + "/health"
	}
	return &Pinger{
		target:   target,
		interval: interval,
		client:   &http.Client{Timeout: pingTimeout},
		logger:   logger,
		metrics:  m,
	}
}

// Run pings once immediately and then every interval until ctx is done.
// Failures are logged and never stop the loop.
func (p *Pinger) Run(ctx context.Context) error {
	if p.target == "" {
		p.logger.Warn("SELF_URL not set, keep-alive pinger disabled")
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.ping(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	p.logger.Info("sending keep-alive ping", slog.String("target", p.target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target, nil)
	if err != nil {
		p.logger.Error("keep-alive ping failed", slog.Any("error", err))
		p.metrics.RecordKeepalive("failed")
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Error("keep-alive ping failed", slog.Any("error", err))
		p.metrics.RecordKeepalive("failed")
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	p.logger.Info("keep-alive response", slog.Int("status", resp.StatusCode))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		p.metrics.RecordKeepalive("ok")
	} else {
		p.metrics.RecordKeepalive("failed")
	}
}
