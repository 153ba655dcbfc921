package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkorolev/petalmarket/internal/models"
)

func (s *MySQLStore) CreateProduct(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (shop_id, name, description, price, photo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query,
		product.ShopID, product.Name, product.Description, product.Price, product.Photo, now, now)
	if err != nil {
		return err
	}

	product.ID, err = result.LastInsertId()
	return err
}

func (s *MySQLStore) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT p.id, p.shop_id, p.name, p.description, p.price, p.photo, p.created_at, p.updated_at, s.name
		FROM products p
		JOIN shops s ON p.shop_id = s.id
		WHERE p.id = ?`

	var p models.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Price, &p.Photo, &p.CreatedAt, &p.UpdatedAt, &p.ShopName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *MySQLStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT p.id, p.shop_id, p.name, p.description, p.price, p.photo, p.created_at, p.updated_at, s.name
		FROM products p
		JOIN shops s ON p.shop_id = s.id
		ORDER BY p.created_at DESC`
	return s.queryProducts(ctx, query)
}

func (s *MySQLStore) ListProductsByShop(ctx context.Context, shopID int64) ([]models.Product, error) {
	query := `
		SELECT p.id, p.shop_id, p.name, p.description, p.price, p.photo, p.created_at, p.updated_at, s.name
		FROM products p
		JOIN shops s ON p.shop_id = s.id
		WHERE p.shop_id = ?
		ORDER BY p.created_at DESC`
	return s.queryProducts(ctx, query, shopID)
}

func (s *MySQLStore) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Price, &p.Photo, &p.CreatedAt, &p.UpdatedAt, &p.ShopName,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateProduct writes the mutable fields. Only the owning shop may
// edit; a mismatched shopID yields ErrForbidden.
func (s *MySQLStore) UpdateProduct(ctx context.Context, shopID int64, product *models.Product) error {
	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var ownerID int64
		err := tx.QueryRowContext(ctx, "SELECT shop_id FROM products WHERE id = ? FOR UPDATE", product.ID).Scan(&ownerID)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}
		if ownerID != shopID {
			return models.ErrForbidden
		}

		product.ShopID = ownerID
		product.UpdatedAt = time.Now()
		query := `
			UPDATE products
			SET name = ?, description = ?, price = ?, photo = ?, updated_at = ?
			WHERE id = ?`
		_, err = tx.ExecContext(ctx, query,
			product.Name, product.Description, product.Price, product.Photo, product.UpdatedAt, product.ID)
		return err
	})
}

// DeleteProduct removes a product owned by the shop. Basket lines
// referencing it cascade away; order item snapshots are untouched.
func (s *MySQLStore) DeleteProduct(ctx context.Context, shopID, productID int64) error {
	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var ownerID int64
		err := tx.QueryRowContext(ctx, "SELECT shop_id FROM products WHERE id = ? FOR UPDATE", productID).Scan(&ownerID)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}
		if ownerID != shopID {
			return models.ErrForbidden
		}

		_, err = tx.ExecContext(ctx, "DELETE FROM products WHERE id = ?", productID)
		return err
	})
}
