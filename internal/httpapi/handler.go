package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alghazali/school-assistant/internal/conversation"
	"github.com/alghazali/school-assistant/internal/metrics"
	"github.com/alghazali/school-assistant/internal/shared/dto"
	"github.com/alghazali/school-assistant/internal/shared/logging"
	sharedserver "github.com/alghazali/school-assistant/internal/shared/server"
)

// Sender delivers a reply to a WhatsApp number.
type Sender interface {
	SendText(ctx context.Context, to, body string) (int, error)
}

// WebhookHandler serves the WhatsApp Cloud API webhook.
type WebhookHandler struct {
	replier     conversation.Replier
	sender      Sender
	verifyToken string
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// NewWebhookHandler wires the webhook with the reply service and the outbound sender.
func NewWebhookHandler(replier conversation.Replier, sender Sender, verifyToken string, logger *slog.Logger, m *metrics.Metrics) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{
		replier:     replier,
		sender:      sender,
		verifyToken: verifyToken,
		logger:      logger,
		metrics:     m,
	}
}

// RegisterRoutes registers the webhook routes.
func RegisterRoutes(r chi.Router, h *WebhookHandler) {
	r.Get("/webhook", h.verify)
	r.Post("/webhook", h.receive)
}

func (h *WebhookHandler) verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "subscribe" && h.verifyToken != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) == 1 {
		h.logger.Info("webhook verified successfully")
		h.metrics.RecordWebhookEvent("verify_ok")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(challenge))
		return
	}

	h.logger.Warn("webhook verification failed", slog.String("mode", mode))
	h.metrics.RecordWebhookEvent("verify_rejected")
	http.Error(w, "Verification token mismatch", http.StatusForbidden)
}

func (h *WebhookHandler) receive(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.logger, middleware.GetReqID(r.Context()))

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.fail(w, logger, err)
		return
	}
	msg, ok, err := payload.firstMessage()
	if err != nil {
		h.fail(w, logger, err)
		return
	}
	if !ok {
		h.metrics.RecordWebhookEvent("no_message")
		sharedserver.WriteJSON(w, http.StatusOK, dto.StatusResponse{Status: "success"})
		return
	}
	h.metrics.RecordWebhookEvent("message")

	text := *msg.Text.Body
	logger.Info("message received", slog.String("from", msg.From), slog.String("text", text))

	reply := h.replier.Reply(r.Context(), text, msg.From)

	status, err := h.sender.SendText(r.Context(), msg.From, reply)
	if err != nil {
		h.metrics.RecordDelivery("failed")
		logger.Error("message delivery failed", slog.String("to", msg.From), slog.Int("status", status), slog.Any("error", err))
	} else {
		h.metrics.RecordDelivery("sent")
		logger.Info("message sent", slog.String("to", msg.From), slog.Int("status", status))
	}

	sharedserver.WriteJSON(w, http.StatusOK, dto.StatusResponse{Status: "success"})
}

func (h *WebhookHandler) fail(w http.ResponseWriter, logger *slog.Logger, err error) {
	h.metrics.RecordWebhookEvent("malformed")
	logger.Error("webhook error", slog.Any("error", err))
	sharedserver.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
