package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkorolev/petalmarket/internal/models"
)

func (s *MySQLStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var existingID int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM customers WHERE email = ?", customer.Email).Scan(&existingID)
		if err == nil {
			return models.ErrEmailTaken
		}
		if err != sql.ErrNoRows {
			return err
		}

		now := time.Now()
		customer.CreatedAt = now
		customer.UpdatedAt = now

		query := `
			INSERT INTO customers (name, surname, phone, email, password_hash, birth_date, description, photo, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		result, err := tx.ExecContext(ctx, query,
			customer.Name, customer.Surname, customer.Phone, customer.Email, customer.PasswordHash,
			customer.BirthDate, customer.Description, customer.Photo, now, now)
		if err != nil {
			return err
		}

		customer.ID, err = result.LastInsertId()
		return err
	})
}

const customerColumns = "id, name, surname, phone, email, password_hash, birth_date, description, photo, created_at, updated_at"

func scanCustomer(row *sql.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Surname, &c.Phone, &c.Email, &c.PasswordHash,
		&c.BirthDate, &c.Description, &c.Photo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *MySQLStore) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customers WHERE email = ?", email)
	return scanCustomer(row)
}

func (s *MySQLStore) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = ?", id)
	return scanCustomer(row)
}

func (s *MySQLStore) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now()

	query := `
		UPDATE customers
		SET name = ?, surname = ?, phone = ?, email = ?, password_hash = ?,
		    birth_date = ?, description = ?, photo = ?, updated_at = ?
		WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query,
		customer.Name, customer.Surname, customer.Phone, customer.Email, customer.PasswordHash,
		customer.BirthDate, customer.Description, customer.Photo, customer.UpdatedAt, customer.ID)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// MySQL also reports 0 for a no-change update; verify existence.
		var id int64
		if err := s.db.QueryRowContext(ctx, "SELECT id FROM customers WHERE id = ?", customer.ID).Scan(&id); err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNotFound
			}
			return err
		}
	}
	return nil
}
