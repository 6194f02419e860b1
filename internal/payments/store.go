package payments

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/391rajan/Quiz/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Plans ───────────────────────────────────────────────

func (s *Store) ListPlans() ([]models.Plan, error) {
	rows, err := s.db.Query(`SELECT id, name, price_cents, duration FROM plans ORDER BY price_cents`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Duration); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Store) GetPlan(planID int64) (*models.Plan, error) {
	var p models.Plan
	err := s.db.QueryRow(
		`SELECT id, name, price_cents, duration FROM plans WHERE id = $1`, planID,
	).Scan(&p.ID, &p.Name, &p.PriceCents, &p.Duration)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ── Orders ──────────────────────────────────────────────

func (s *Store) CreateOrder(userID int64, plan *models.Plan) (*models.Order, error) {
	var order models.Order
	err := s.db.QueryRow(
		`INSERT INTO orders (user_id, plan_id, total_price_cents)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, plan_id, total_price_cents, status, created_at`,
		userID, plan.ID, plan.PriceCents,
	).Scan(&order.ID, &order.UserID, &order.PlanID, &order.TotalPriceCents, &order.Status, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// ── Payments ────────────────────────────────────────────

func (s *Store) RecordPayment(userID int64, amountCents int, status, transactionID string) error {
	_, err := s.db.Exec(
		`INSERT INTO payments (user_id, amount_cents, status, transaction_id)
		 VALUES ($1, $2, $3, $4)`,
		userID, amountCents, status, transactionID,
	)
	if err != nil {
		return fmt.Errorf("record payment: %w", err)
	}
	return nil
}

// ActivateSubscription flips the user's plan to active as of now.
func (s *Store) ActivateSubscription(userID int64, plan string) error {
	_, err := s.db.Exec(
		`UPDATE users
		 SET subscription_plan = $1, subscription_status = 'active', subscription_date = $2, updated_at = NOW()
		 WHERE id = $3`,
		plan, time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}
	return nil
}

func (s *Store) GetSubscriptionStatus(userID int64) (*models.SubscriptionStatusResponse, error) {
	var resp models.SubscriptionStatusResponse
	err := s.db.QueryRow(
		`SELECT subscription_plan, subscription_status, subscription_date FROM users WHERE id = $1`,
		userID,
	).Scan(&resp.Plan, &resp.Status, &resp.Date)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
