package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alghazali/school-assistant/internal/conversation"
	sharedauth "github.com/alghazali/school-assistant/internal/shared/auth"
	sharederrors "github.com/alghazali/school-assistant/internal/shared/errors"
	sharedserver "github.com/alghazali/school-assistant/internal/shared/server"
)

type conversationResponse struct {
	UserID    string                  `json:"user_id"`
	Exchanges []conversation.Exchange `json:"exchanges"`
}

// RegisterOperatorRoutes exposes read-only conversation inspection behind bearer auth.
func RegisterOperatorRoutes(r chi.Router, verifier sharedauth.Verifier, history conversation.HistoryReader) {
	r.Route("/v1/conversations", func(r chi.Router) {
		r.Use(sharedauth.Middleware(verifier))
		r.Get("/{userID}", getConversation(history))
	})
}

func getConversation(history conversation.HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(chi.URLParam(r, "userID"))
		if userID == "" {
			sharederrors.Write(w, sharederrors.ErrorResponse{
				Code:      "bad_request",
				Message:   "user id required",
				RequestID: middleware.GetReqID(r.Context()),
			})
			return
		}
		sharedserver.WriteJSON(w, http.StatusOK, conversationResponse{
			UserID:    userID,
			Exchanges: history.Recent(userID, conversation.MaxExchanges),
		})
	}
}
