package models

import "time"

// ── Newsletter ────────────────────────────────────────

type SubscriptionStatus string

const (
	SubscriptionPending      SubscriptionStatus = "pending"
	SubscriptionConfirmed    SubscriptionStatus = "confirmed"
	SubscriptionUnsubscribed SubscriptionStatus = "unsubscribed"
)

type Subscription struct {
	ID           int64              `json:"id"`
	Email        string             `json:"email"`
	Status       SubscriptionStatus `json:"status"`
	Source       string             `json:"source"`
	SubscribedAt time.Time          `json:"subscribed_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type SubscribeRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

type SubscribeResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type SubscriptionStats struct {
	Total     int            `json:"total"`
	Pending   int            `json:"pending"`
	Confirmed int            `json:"confirmed"`
	BySource  map[string]int `json:"by_source"`
}

// ── Plans & Orders ────────────────────────────────────

type Plan struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
	Duration   string `json:"duration"`
}

type Order struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	PlanID          int64     `json:"plan_id"`
	TotalPriceCents int       `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateOrderRequest struct {
	PlanID int64 `json:"plan_id"`
}

// ── Payments ──────────────────────────────────────────

type Payment struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	AmountCents   int       `json:"amount_cents"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type DummyPaymentRequest struct {
	Plan        string `json:"plan"`
	AmountCents int    `json:"amount_cents"`
}

type DummyPaymentResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	AmountCents   int    `json:"amount_cents"`
	Plan          string `json:"plan"`
}

type SubscriptionStatusResponse struct {
	Plan   string     `json:"plan"`
	Status string     `json:"status"`
	Date   *time.Time `json:"date,omitempty"`
}
