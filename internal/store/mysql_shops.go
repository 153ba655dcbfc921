package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkorolev/petalmarket/internal/models"
)

func (s *MySQLStore) CreateShop(ctx context.Context, shop *models.Shop) error {
	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var existingID int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM shops WHERE email = ?", shop.Email).Scan(&existingID)
		if err == nil {
			return models.ErrEmailTaken
		}
		if err != sql.ErrNoRows {
			return err
		}

		now := time.Now()
		shop.CreatedAt = now
		shop.UpdatedAt = now

		query := `
			INSERT INTO shops (name, category, contact_person_name, registration_number, phone, email, password_hash, address, description, photo, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		result, err := tx.ExecContext(ctx, query,
			shop.Name, shop.Category, shop.ContactPersonName, shop.RegistrationNumber, shop.Phone,
			shop.Email, shop.PasswordHash, shop.Address, shop.Description, shop.Photo, now, now)
		if err != nil {
			return err
		}

		shop.ID, err = result.LastInsertId()
		return err
	})
}

const shopColumns = "id, name, category, contact_person_name, registration_number, phone, email, password_hash, address, description, photo, created_at, updated_at"

func scanShop(row *sql.Row) (*models.Shop, error) {
	var sh models.Shop
	err := row.Scan(
		&sh.ID, &sh.Name, &sh.Category, &sh.ContactPersonName, &sh.RegistrationNumber, &sh.Phone,
		&sh.Email, &sh.PasswordHash, &sh.Address, &sh.Description, &sh.Photo, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &sh, nil
}

func (s *MySQLStore) GetShopByEmail(ctx context.Context, email string) (*models.Shop, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+shopColumns+" FROM shops WHERE email = ?", email)
	return scanShop(row)
}

func (s *MySQLStore) GetShopByID(ctx context.Context, id int64) (*models.Shop, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+shopColumns+" FROM shops WHERE id = ?", id)
	shop, err := scanShop(row)
	if err != nil {
		return nil, err
	}

	rating, err := s.ShopRating(ctx, id)
	if err != nil {
		return nil, err
	}
	shop.AverageRating = rating.Average
	shop.ReviewCount = rating.Count
	return shop, nil
}

// GetShopProfile returns the shop together with its products and its
// reviews, the way the public shop page displays it.
func (s *MySQLStore) GetShopProfile(ctx context.Context, id int64) (*models.Shop, error) {
	shop, err := s.GetShopByID(ctx, id)
	if err != nil {
		return nil, err
	}

	shop.Products, err = s.ListProductsByShop(ctx, id)
	if err != nil {
		return nil, err
	}

	shop.Reviews, err = s.ListReviewsByShop(ctx, id)
	if err != nil {
		return nil, err
	}
	return shop, nil
}

// ListShops returns the public directory. The average rating and the
// review count are recomputed on every read; the optional minimum
// rating filter is applied on the rounded value.
func (s *MySQLStore) ListShops(ctx context.Context, filter models.ShopFilter) ([]models.Shop, error) {
	query := `
		SELECT
			s.id, s.name, s.category, s.contact_person_name, s.registration_number, s.phone,
			s.email, s.password_hash, s.address, s.description, s.photo, s.created_at, s.updated_at,
			COALESCE(ROUND(AVG(r.rating), 1), 0) AS average_rating,
			COUNT(r.id) AS review_count
		FROM shops s
		LEFT JOIN reviews r ON r.shop_id = s.id
		WHERE 1=1`
	args := []any{}

	if filter.Name != "" {
		query += " AND s.name LIKE ?"
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Address != "" {
		query += " AND s.address LIKE ?"
		args = append(args, "%"+filter.Address+"%")
	}
	if filter.Category != "" {
		query += " AND s.category = ?"
		args = append(args, filter.Category)
	}

	query += " GROUP BY s.id"
	if filter.MinRating != nil {
		query += " HAVING average_rating >= ?"
		args = append(args, *filter.MinRating)
	}
	query += " ORDER BY s.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []models.Shop
	for rows.Next() {
		var sh models.Shop
		if err := rows.Scan(
			&sh.ID, &sh.Name, &sh.Category, &sh.ContactPersonName, &sh.RegistrationNumber, &sh.Phone,
			&sh.Email, &sh.PasswordHash, &sh.Address, &sh.Description, &sh.Photo, &sh.CreatedAt, &sh.UpdatedAt,
			&sh.AverageRating, &sh.ReviewCount,
		); err != nil {
			return nil, err
		}
		shops = append(shops, sh)
	}
	return shops, rows.Err()
}

func (s *MySQLStore) UpdateShop(ctx context.Context, shop *models.Shop) error {
	shop.UpdatedAt = time.Now()

	query := `
		UPDATE shops
		SET name = ?, category = ?, contact_person_name = ?, registration_number = ?, phone = ?,
		    email = ?, password_hash = ?, address = ?, description = ?, photo = ?, updated_at = ?
		WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query,
		shop.Name, shop.Category, shop.ContactPersonName, shop.RegistrationNumber, shop.Phone,
		shop.Email, shop.PasswordHash, shop.Address, shop.Description, shop.Photo, shop.UpdatedAt, shop.ID)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		var id int64
		if err := s.db.QueryRowContext(ctx, "SELECT id FROM shops WHERE id = ?", shop.ID).Scan(&id); err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}
	}
	return nil
}

// DeleteShop removes the shop. Products and basket lines referencing
// them go with it via ON DELETE CASCADE; orders and their item
// snapshots survive as history.
func (s *MySQLStore) DeleteShop(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM shops WHERE id = ?", id)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *MySQLStore) ShopRating(ctx context.Context, shopID int64) (models.RatingSummary, error) {
	var summary models.RatingSummary
	query := "SELECT COALESCE(ROUND(AVG(rating), 1), 0), COUNT(*) FROM reviews WHERE shop_id = ?"
	err := s.db.QueryRowContext(ctx, query, shopID).Scan(&summary.Average, &summary.Count)
	return summary, err
}
