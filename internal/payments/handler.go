package payments

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"

	"github.com/google/uuid"

	"github.com/391rajan/Quiz/internal/models"
)

// paymentSuccessRate is the simulated success probability of the dummy
// payment gateway.
const paymentSuccessRate = 0.9

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.store.ListPlans()
	if err != nil {
		log.Printf("[payments] ListPlans error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list plans"})
		return
	}

	if plans == nil {
		plans = []models.Plan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	plan, err := h.store.GetPlan(req.PlanID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Plan not found"})
		return
	}
	if err != nil {
		log.Printf("[payments] GetPlan error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
		return
	}

	order, err := h.store.CreateOrder(userID, plan)
	if err != nil {
		log.Printf("[payments] CreateOrder error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create order"})
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// ProcessDummyPayment simulates a payment gateway: it succeeds 90% of the
// time, records the payment either way, and on success activates the user's
// subscription plan.
func (h *Handler) ProcessDummyPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.DummyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Plan == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "plan is required"})
		return
	}
	if req.AmountCents <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "amount_cents must be positive"})
		return
	}

	transactionID := "dummy_" + uuid.NewString()
	log.Printf("[payments] processing dummy payment for plan %q, amount %d cents", req.Plan, req.AmountCents)

	if rand.Float64() >= paymentSuccessRate {
		if err := h.store.RecordPayment(userID, req.AmountCents, "failed", transactionID); err != nil {
			log.Printf("WARN: failed to record failed payment: %v", err)
		}
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Dummy payment failed. Please try again."})
		return
	}

	if err := h.store.RecordPayment(userID, req.AmountCents, "succeeded", transactionID); err != nil {
		log.Printf("[payments] RecordPayment error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
		return
	}

	if err := h.store.ActivateSubscription(userID, req.Plan); err != nil {
		log.Printf("[payments] ActivateSubscription error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
		return
	}

	writeJSON(w, http.StatusOK, models.DummyPaymentResponse{
		Success:       true,
		Message:       fmt.Sprintf("Successfully subscribed to %s plan! (Dummy Payment)", req.Plan),
		TransactionID: transactionID,
		AmountCents:   req.AmountCents,
		Plan:          req.Plan,
	})
}

func (h *Handler) GetSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	status, err := h.store.GetSubscriptionStatus(userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
