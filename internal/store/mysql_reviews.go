package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkorolev/petalmarket/internal/models"
)

// CreateReview enforces the review gate: the order must exist, belong
// to the caller, be completed, and not have a review yet. The check
// and the insert share one transaction (the unique key on order_id is
// the backstop).
func (s *MySQLStore) CreateReview(ctx context.Context, customerID, orderID int64, rating int, shortText, longText string) (*models.Review, error) {
	var review *models.Review

	err := s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var orderCustomerID, orderShopID int64
		var status models.OrderStatus
		err := tx.QueryRowContext(ctx,
			"SELECT customer_id, shop_id, status FROM orders WHERE id = ? FOR UPDATE", orderID).
			Scan(&orderCustomerID, &orderShopID, &status)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}

		if orderCustomerID != customerID {
			return models.ErrForbidden
		}
		if status != models.StatusCompleted {
			return models.ErrInvalidState
		}

		var existingID int64
		err = tx.QueryRowContext(ctx, "SELECT id FROM reviews WHERE order_id = ?", orderID).Scan(&existingID)
		if err == nil {
			return models.ErrDuplicateReview
		}
		if err != sql.ErrNoRows {
			return err
		}

		now := time.Now()
		result, err := tx.ExecContext(ctx, `
			INSERT INTO reviews (order_id, shop_id, customer_id, rating, short_text, long_text, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			orderID, orderShopID, customerID, rating, shortText, longText, now, now)
		if err != nil {
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		review = &models.Review{
			ID:         id,
			OrderID:    orderID,
			ShopID:     orderShopID,
			CustomerID: customerID,
			Rating:     rating,
			ShortText:  shortText,
			LongText:   longText,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

const reviewColumns = "r.id, r.order_id, r.shop_id, r.customer_id, r.rating, r.short_text, r.long_text, r.created_at, r.updated_at"

func (s *MySQLStore) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `, COALESCE(c.name, ''), COALESCE(c.surname, '')
		FROM reviews r
		LEFT JOIN customers c ON r.customer_id = c.id
		WHERE r.id = ?`

	var r models.Review
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.OrderID, &r.ShopID, &r.CustomerID, &r.Rating, &r.ShortText, &r.LongText,
		&r.CreatedAt, &r.UpdatedAt, &r.CustomerName, &r.CustomerSurname,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *MySQLStore) ListReviewsByShop(ctx context.Context, shopID int64) ([]models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `, COALESCE(c.name, ''), COALESCE(c.surname, '')
		FROM reviews r
		LEFT JOIN customers c ON r.customer_id = c.id
		WHERE r.shop_id = ?
		ORDER BY r.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(
			&r.ID, &r.OrderID, &r.ShopID, &r.CustomerID, &r.Rating, &r.ShortText, &r.LongText,
			&r.CreatedAt, &r.UpdatedAt, &r.CustomerName, &r.CustomerSurname,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// UpdateReview rewrites the review body. Only the original author may
// edit; there is no state restriction beyond ownership.
func (s *MySQLStore) UpdateReview(ctx context.Context, customerID, reviewID int64, rating int, shortText, longText string) (*models.Review, error) {
	err := s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var authorID int64
		err := tx.QueryRowContext(ctx, "SELECT customer_id FROM reviews WHERE id = ? FOR UPDATE", reviewID).Scan(&authorID)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}
		if authorID != customerID {
			return models.ErrForbidden
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE reviews SET rating = ?, short_text = ?, long_text = ?, updated_at = ? WHERE id = ?",
			rating, shortText, longText, time.Now(), reviewID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetReview(ctx, reviewID)
}

func (s *MySQLStore) DeleteReview(ctx context.Context, customerID, reviewID int64) error {
	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var authorID int64
		err := tx.QueryRowContext(ctx, "SELECT customer_id FROM reviews WHERE id = ? FOR UPDATE", reviewID).Scan(&authorID)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}
		if authorID != customerID {
			return models.ErrForbidden
		}

		_, err = tx.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", reviewID)
		return err
	})
}
