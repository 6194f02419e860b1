package subscriptions

import (
	"database/sql"
	"fmt"

	"github.com/391rajan/Quiz/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindByEmail(email string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.QueryRow(
		`SELECT id, email, status, source, subscribed_at, updated_at
		 FROM newsletter_subscriptions WHERE email = $1`,
		email,
	).Scan(&sub.ID, &sub.Email, &sub.Status, &sub.Source, &sub.SubscribedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) Create(email, source string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.QueryRow(
		`INSERT INTO newsletter_subscriptions (email, source)
		 VALUES ($1, $2)
		 RETURNING id, email, status, source, subscribed_at, updated_at`,
		email, source,
	).Scan(&sub.ID, &sub.Email, &sub.Status, &sub.Source, &sub.SubscribedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return &sub, nil
}

func (s *Store) UpdateStatus(email string, status models.SubscriptionStatus, source string) error {
	var result sql.Result
	var err error
	if source != "" {
		result, err = s.db.Exec(
			`UPDATE newsletter_subscriptions SET status = $1, source = $2, updated_at = NOW() WHERE email = $3`,
			status, source, email,
		)
	} else {
		result, err = s.db.Exec(
			`UPDATE newsletter_subscriptions SET status = $1, updated_at = NOW() WHERE email = $2`,
			status, email,
		)
	}
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) ListAll() ([]models.Subscription, error) {
	rows, err := s.db.Query(
		`SELECT id, email, status, source, subscribed_at, updated_at
		 FROM newsletter_subscriptions ORDER BY subscribed_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Status, &sub.Source, &sub.SubscribedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Stats counts active subscriptions overall, per status, and per source.
// Unsubscribed entries are excluded from every count.
func (s *Store) Stats() (*models.SubscriptionStats, error) {
	stats := models.SubscriptionStats{BySource: map[string]int{}}

	err := s.db.QueryRow(
		`SELECT COUNT(*) FILTER (WHERE status != 'unsubscribed'),
		        COUNT(*) FILTER (WHERE status = 'pending'),
		        COUNT(*) FILTER (WHERE status = 'confirmed')
		 FROM newsletter_subscriptions`,
	).Scan(&stats.Total, &stats.Pending, &stats.Confirmed)
	if err != nil {
		return nil, fmt.Errorf("subscription counts: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT source, COUNT(*) FROM newsletter_subscriptions
		 WHERE status != 'unsubscribed' GROUP BY source`,
	)
	if err != nil {
		return nil, fmt.Errorf("subscription source stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("scan source stat: %w", err)
		}
		stats.BySource[source] = count
	}

	return &stats, rows.Err()
}
