package models

import "time"

// Customer is the model for the 'customers' table.
// Pointers are used for nullable profile fields so they serialize cleanly.
type Customer struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Surname      string `json:"surname" db:"surname"`
	Phone        string `json:"phone" db:"phone"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`

	BirthDate   *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Description *string    `json:"description,omitempty" db:"description"`
	Photo       *string    `json:"photo,omitempty" db:"photo"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
