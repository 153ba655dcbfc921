package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkorolev/petalmarket/internal/models"
)

// PlaceOrder converts the customer's basket into an immutable order
// snapshot. Reading the basket, pricing the lines, writing the order
// and clearing the basket happen in one serializable transaction: two
// concurrent calls against the same basket cannot both produce an
// order, and there is no state where the basket is cleared without an
// order existing.
func (s *MySQLStore) PlaceOrder(ctx context.Context, customerID int64, deliveryAddress string) (*models.Order, error) {
	var order *models.Order

	err := s.withTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(tx *sql.Tx) error {
		var basketID int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM baskets WHERE customer_id = ? FOR UPDATE", customerID).Scan(&basketID)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrEmptyBasket
			}
			return err
		}

		// Lock the product rows so prices cannot shift mid-checkout.
		query := `
			SELECT bi.product_id, bi.quantity, p.name, p.price, p.shop_id
			FROM basket_items bi
			JOIN products p ON bi.product_id = p.id
			WHERE bi.basket_id = ?
			ORDER BY bi.created_at ASC
			FOR UPDATE`
		rows, err := tx.QueryContext(ctx, query, basketID)
		if err != nil {
			return err
		}
		defer rows.Close()

		var items []models.OrderItem
		var shopID int64
		for rows.Next() {
			var item models.OrderItem
			var itemShopID int64
			if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Name, &item.UnitPrice, &itemShopID); err != nil {
				return err
			}

			// Defensive single-shop check; AddBasketItem should have
			// made a mixed basket impossible.
			if shopID == 0 {
				shopID = itemShopID
			} else if shopID != itemShopID {
				return models.ErrCrossShopConflict
			}
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(items) == 0 {
			return models.ErrEmptyBasket
		}

		now := time.Now()
		total := models.OrderTotal(items)

		orderQuery := `
			INSERT INTO orders (customer_id, shop_id, delivery_address, total_cost, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		result, err := tx.ExecContext(ctx, orderQuery,
			customerID, shopID, deliveryAddress, total, models.StatusPending, now, now)
		if err != nil {
			return err
		}
		orderID, err := result.LastInsertId()
		if err != nil {
			return err
		}

		itemQuery := `
			INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`
		for i := range items {
			items[i].OrderID = orderID
			items[i].CreatedAt = now
			itemResult, err := tx.ExecContext(ctx, itemQuery,
				orderID, items[i].ProductID, items[i].Name, items[i].Quantity, items[i].UnitPrice, now)
			if err != nil {
				return err
			}
			items[i].ID, _ = itemResult.LastInsertId()
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM basket_items WHERE basket_id = ?", basketID); err != nil {
			return err
		}

		order = &models.Order{
			ID:              orderID,
			CustomerID:      customerID,
			ShopID:          shopID,
			DeliveryAddress: deliveryAddress,
			TotalCost:       total,
			Status:          models.StatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
			Items:           items,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// TransitionOrderStatus applies one edge of the order state machine on
// behalf of a verified actor. The current status is read under a row
// lock so concurrent transitions on the same order serialize.
func (s *MySQLStore) TransitionOrderStatus(ctx context.Context, orderID int64, actor models.Actor, newStatus models.OrderStatus) error {
	if !newStatus.Valid() {
		return models.ErrInvalidTransition
	}

	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var customerID, shopID int64
		var current models.OrderStatus
		err := tx.QueryRowContext(ctx,
			"SELECT customer_id, shop_id, status FROM orders WHERE id = ? FOR UPDATE", orderID).
			Scan(&customerID, &shopID, &current)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}

		switch actor.Kind {
		case models.ActorCustomer:
			if actor.ID != customerID {
				return models.ErrForbidden
			}
		case models.ActorShop:
			if actor.ID != shopID {
				return models.ErrForbidden
			}
		default:
			return models.ErrForbidden
		}

		if !models.SettableBy(actor.Kind, newStatus) {
			return models.ErrForbidden
		}
		if !models.TransitionAllowed(current, newStatus) {
			return models.ErrInvalidTransition
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
			newStatus, time.Now(), orderID)
		return err
	})
}

// SetCompletionTime stores the shop's free-text completion estimate.
// Allowed at any non-terminal status.
func (s *MySQLStore) SetCompletionTime(ctx context.Context, orderID, shopID int64, text string) error {
	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var ownerID int64
		var current models.OrderStatus
		err := tx.QueryRowContext(ctx,
			"SELECT shop_id, status FROM orders WHERE id = ? FOR UPDATE", orderID).
			Scan(&ownerID, &current)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}

		if ownerID != shopID {
			return models.ErrForbidden
		}
		if current.Terminal() {
			return models.ErrInvalidState
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE orders SET completion_time = ?, updated_at = ? WHERE id = ?",
			text, time.Now(), orderID)
		return err
	})
}

const orderColumns = "o.id, o.customer_id, o.shop_id, o.delivery_address, o.total_cost, o.status, o.completion_time, o.created_at, o.updated_at"

// GetOrder returns the order with its line items and both party
// summaries. Deleted shops or customers degrade to empty names.
func (s *MySQLStore) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `,
			COALESCE(s.name, ''), COALESCE(CONCAT(c.name, ' ', c.surname), '')
		FROM orders o
		LEFT JOIN shops s ON o.shop_id = s.id
		LEFT JOIN customers c ON o.customer_id = c.id
		WHERE o.id = ?`

	var o models.Order
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID, &o.CustomerID, &o.ShopID, &o.DeliveryAddress, &o.TotalCost, &o.Status,
		&o.CompletionTime, &o.CreatedAt, &o.UpdatedAt, &o.ShopName, &o.CustomerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if err := s.attachOrderItems(ctx, []*models.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *MySQLStore) ListOrdersForCustomer(ctx context.Context, customerID int64, filter models.OrderFilter) ([]models.Order, error) {
	return s.listOrders(ctx, "o.customer_id = ?", customerID, filter)
}

func (s *MySQLStore) ListOrdersForShop(ctx context.Context, shopID int64, filter models.OrderFilter) ([]models.Order, error) {
	return s.listOrders(ctx, "o.shop_id = ?", shopID, filter)
}

func (s *MySQLStore) listOrders(ctx context.Context, ownerClause string, ownerID int64, filter models.OrderFilter) ([]models.Order, error) {
	query := `
		SELECT ` + orderColumns + `,
			COALESCE(s.name, ''), COALESCE(CONCAT(c.name, ' ', c.surname), '')
		FROM orders o
		LEFT JOIN shops s ON o.shop_id = s.id
		LEFT JOIN customers c ON o.customer_id = c.id
		WHERE ` + ownerClause
	args := []any{ownerID}

	if filter.Status != nil {
		query += " AND o.status = ?"
		args = append(args, *filter.Status)
	}
	if filter.From != nil {
		query += " AND o.created_at >= ?"
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += " AND o.created_at <= ?"
		args = append(args, *filter.To)
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.ShopID, &o.DeliveryAddress, &o.TotalCost, &o.Status,
			&o.CompletionTime, &o.CreatedAt, &o.UpdatedAt, &o.ShopName, &o.CustomerName,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := s.attachOrderItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachOrderItems loads the snapshotted lines for each order.
func (s *MySQLStore) attachOrderItems(ctx context.Context, orders []*models.Order) error {
	query := `
		SELECT id, order_id, product_id, name, quantity, unit_price, created_at
		FROM order_items
		WHERE order_id = ?
		ORDER BY id ASC`

	for _, o := range orders {
		rows, err := s.db.QueryContext(ctx, query, o.ID)
		if err != nil {
			return err
		}

		var items []models.OrderItem
		for rows.Next() {
			var item models.OrderItem
			if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice, &item.CreatedAt); err != nil {
				rows.Close()
				return err
			}
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
		o.Items = items
	}
	return nil
}
