package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkorolev/petalmarket/internal/models"
)

// getOrCreateBasketID finds the customer's basket or creates one, and
// locks the basket row for the rest of the transaction. Every basket
// mutation goes through this lock, which serializes concurrent
// requests against the same basket.
func getOrCreateBasketID(ctx context.Context, tx *sql.Tx, customerID int64) (int64, error) {
	var basketID int64
	err := tx.QueryRowContext(ctx, "SELECT id FROM baskets WHERE customer_id = ? FOR UPDATE", customerID).Scan(&basketID)
	if err == nil {
		return basketID, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		"INSERT INTO baskets (customer_id, created_at, updated_at) VALUES (?, ?, ?)",
		customerID, now, now)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// lockBasketID locks the customer's basket row without creating one.
func lockBasketID(ctx context.Context, tx *sql.Tx, customerID int64) (int64, error) {
	var basketID int64
	err := tx.QueryRowContext(ctx, "SELECT id FROM baskets WHERE customer_id = ? FOR UPDATE", customerID).Scan(&basketID)
	if err == sql.ErrNoRows {
		return 0, models.ErrNotFound
	}
	return basketID, err
}

// AddBasketItem appends a line or bumps the quantity of an existing
// one. A product from a second shop is rejected and the basket is
// left untouched.
func (s *MySQLStore) AddBasketItem(ctx context.Context, customerID, productID int64, quantity int) error {
	if quantity <= 0 {
		return models.ErrInvalidQuantity
	}

	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var productShopID int64
		err := tx.QueryRowContext(ctx, "SELECT shop_id FROM products WHERE id = ?", productID).Scan(&productShopID)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}

		basketID, err := getOrCreateBasketID(ctx, tx, customerID)
		if err != nil {
			return err
		}

		// Single-shop invariant: any existing line from another shop
		// blocks the add.
		var foreignCount int
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM basket_items bi
			JOIN products p ON bi.product_id = p.id
			WHERE bi.basket_id = ? AND p.shop_id <> ?`,
			basketID, productShopID).Scan(&foreignCount)
		if err != nil {
			return err
		}
		if foreignCount > 0 {
			return models.ErrCrossShopConflict
		}

		now := time.Now()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO basket_items (basket_id, product_id, quantity, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				quantity = quantity + VALUES(quantity),
				updated_at = VALUES(updated_at)`,
			basketID, productID, quantity, now, now)
		return err
	})
}

// UpdateBasketItem sets the quantity of an existing line. A quantity
// of zero or less is rejected; removal is its own operation.
func (s *MySQLStore) UpdateBasketItem(ctx context.Context, customerID, productID int64, quantity int) error {
	if quantity <= 0 {
		return models.ErrInvalidQuantity
	}

	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		basketID, err := lockBasketID(ctx, tx, customerID)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			"UPDATE basket_items SET quantity = ?, updated_at = ? WHERE basket_id = ? AND product_id = ?",
			quantity, time.Now(), basketID, productID)
		if err != nil {
			return err
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			// Either the line is absent or the quantity is unchanged;
			// tell them apart before reporting not found.
			var id int64
			err := tx.QueryRowContext(ctx,
				"SELECT id FROM basket_items WHERE basket_id = ? AND product_id = ?",
				basketID, productID).Scan(&id)
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}
		return nil
	})
}

func (s *MySQLStore) RemoveBasketItem(ctx context.Context, customerID, productID int64) error {
	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		basketID, err := lockBasketID(ctx, tx, customerID)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			"DELETE FROM basket_items WHERE basket_id = ? AND product_id = ?", basketID, productID)
		if err != nil {
			return err
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

// ClearBasket empties the basket. Clearing an absent or already empty
// basket succeeds.
func (s *MySQLStore) ClearBasket(ctx context.Context, customerID int64) error {
	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		basketID, err := lockBasketID(ctx, tx, customerID)
		if err != nil {
			if err == models.ErrNotFound {
				return nil
			}
			return err
		}

		_, err = tx.ExecContext(ctx, "DELETE FROM basket_items WHERE basket_id = ?", basketID)
		return err
	})
}

// GetBasket resolves the basket lines against the current catalog and
// computes the total live.
func (s *MySQLStore) GetBasket(ctx context.Context, customerID int64) (*models.BasketView, error) {
	view := &models.BasketView{Items: []models.BasketItemView{}}

	var basketID int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM baskets WHERE customer_id = ?", customerID).Scan(&basketID)
	if err != nil {
		if err == sql.ErrNoRows {
			return view, nil
		}
		return nil, err
	}

	query := `
		SELECT bi.product_id, p.name, p.price, p.photo, bi.quantity, p.shop_id, s.name
		FROM basket_items bi
		JOIN products p ON bi.product_id = p.id
		JOIN shops s ON p.shop_id = s.id
		WHERE bi.basket_id = ?
		ORDER BY bi.created_at ASC`
	rows, err := s.db.QueryContext(ctx, query, basketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.BasketItemView
		var shopID int64
		var shopName string
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Photo, &item.Quantity, &shopID, &shopName); err != nil {
			return nil, err
		}

		item.LineTotal = item.Price * int64(item.Quantity)
		view.Total += item.LineTotal
		view.TotalItems += item.Quantity
		view.ShopID = shopID
		view.ShopName = shopName
		view.Items = append(view.Items, item)
	}
	return view, rows.Err()
}
