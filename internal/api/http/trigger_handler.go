package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"elearning-notifier/internal/domain"
	"elearning-notifier/internal/logger"
	"elearning-notifier/internal/security"
	"elearning-notifier/internal/service"
	"elearning-notifier/internal/trigger"
)

const maxEventBytes = 1 << 20

// Dispatcher is the part of service.NotificationDispatcher the handler needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, notificationID string, n *domain.Notification) service.DispatchOutcome
	Configured() bool
}

// TriggerHandler receives notification-created events over HTTP
type TriggerHandler struct {
	dispatcher Dispatcher
	tokens     security.PushTokenManager
}

// NewTriggerHandler creates the handler. A nil token manager accepts
// unauthenticated deliveries.
func NewTriggerHandler(dispatcher Dispatcher, tokens security.PushTokenManager) *TriggerHandler {
	return &TriggerHandler{
		dispatcher: dispatcher,
		tokens:     tokens,
	}
}

type dispatchResponse struct {
	NotificationID string `json:"notificationId"`
	Outcome        string `json:"outcome"`
}

type healthResponse struct {
	Status         string `json:"status"`
	MailConfigured bool   `json:"mailConfigured"`
}

// HandleNotificationCreated runs the dispatcher for one Firestore event.
// Every decodable event is acknowledged with 200 whatever the outcome, so the
// sender never redelivers because an email was skipped or failed.
func (h *TriggerHandler) HandleNotificationCreated(w http.ResponseWriter, r *http.Request) {
	if h.tokens != nil {
		if err := h.authorize(r); err != nil {
			logger.Warn("Rejected trigger delivery", "error", err, "remote_addr", r.RemoteAddr)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	event, err := trigger.ParseFirestoreEvent(body)
	if err != nil {
		logger.Error("Undecodable trigger event", "error", err)
		http.Error(w, "Invalid event", http.StatusBadRequest)
		return
	}

	n, err := trigger.DecodeNotification(event)
	if err != nil {
		logger.Error("Undecodable trigger event", "error", err)
		http.Error(w, "Invalid event", http.StatusBadRequest)
		return
	}

	// The email goes out even if the caller hangs up mid-request.
	outcome := h.dispatcher.Dispatch(context.WithoutCancel(r.Context()), n.ID, n)

	writeJSON(w, http.StatusOK, dispatchResponse{NotificationID: n.ID, Outcome: string(outcome)})
}

// HandleHealth reports liveness and whether mail delivery is enabled
func (h *TriggerHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", MailConfigured: h.dispatcher.Configured()})
}

func (h *TriggerHandler) authorize(r *http.Request) error {
	header := r.Header.Get("Authorization")
	if header == "" {
		return errors.New("authorization token is not provided")
	}
	token := header
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	_, err := h.tokens.Validate(token)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to write response", "error", err)
	}
}

// RegisterRoutes registers the trigger, health and (optional) metrics endpoints
func RegisterRoutes(router *mux.Router, handler *TriggerHandler, metrics http.Handler) {
	router.HandleFunc("/v1/triggers/notifications", handler.HandleNotificationCreated).Methods("POST")
	router.HandleFunc("/healthz", handler.HandleHealth).Methods("GET")
	if metrics != nil {
		router.Handle("/metrics", metrics).Methods("GET")
	}
}
