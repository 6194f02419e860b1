package subscriptions

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"

	"github.com/391rajan/Quiz/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email is required"})
		return
	}
	if !emailPattern.MatchString(req.Email) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid email format"})
		return
	}
	if req.Source == "" {
		req.Source = "homepage"
	}

	existing, err := h.store.FindByEmail(req.Email)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("[subscriptions] FindByEmail error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error. Please try again later."})
		return
	}

	if existing != nil {
		if existing.Status == models.SubscriptionUnsubscribed {
			if err := h.store.UpdateStatus(req.Email, models.SubscriptionPending, req.Source); err != nil {
				log.Printf("[subscriptions] reactivate error: %v", err)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error. Please try again later."})
				return
			}
			writeJSON(w, http.StatusOK, models.SubscribeResponse{
				Message: "Subscription reactivated successfully",
				Email:   req.Email,
			})
			return
		}
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Email already subscribed"})
		return
	}

	sub, err := h.store.Create(req.Email, req.Source)
	if err != nil {
		log.Printf("[subscriptions] Create error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error. Please try again later."})
		return
	}

	writeJSON(w, http.StatusCreated, models.SubscribeResponse{
		Message: "Subscription successful! Welcome to QuizMaster.",
		Email:   sub.Email,
	})
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(strings.ToLower(mux.Vars(r)["email"]))
	if email == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email is required"})
		return
	}

	err := h.store.UpdateStatus(email, models.SubscriptionUnsubscribed, "")
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Subscription not found"})
		return
	}
	if err != nil {
		log.Printf("[subscriptions] Unsubscribe error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Successfully unsubscribed"})
}

// ── Admin Handlers ──────────────────────────────────────

func (h *Handler) GetAllSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListAll()
	if err != nil {
		log.Printf("[subscriptions] ListAll error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
		return
	}

	if subs == nil {
		subs = []models.Subscription{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) GetSubscriptionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats()
	if err != nil {
		log.Printf("[subscriptions] Stats error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
