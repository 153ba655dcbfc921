package models

import (
	"math"
	"time"
)

// Shop is the model for the 'shops' table. The Category attribute
// (e.g. "flowers", "hardware") replaces the per-type shop entities the
// marketplace started with; all workflow code operates on the single
// polymorphic entity.
type Shop struct {
	ID                 int64  `json:"id" db:"id"`
	Name               string `json:"name" db:"name"`
	Category           string `json:"category" db:"category"`
	ContactPersonName  string `json:"contactPersonName" db:"contact_person_name"`
	RegistrationNumber string `json:"registrationNumber" db:"registration_number"`
	Phone              string `json:"phone" db:"phone"`
	Email              string `json:"email" db:"email"`
	PasswordHash       string `json:"-" db:"password_hash"`
	Address            string `json:"address" db:"address"`

	Description *string `json:"description,omitempty" db:"description"`
	Photo       *string `json:"photo,omitempty" db:"photo"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (not columns, populated manually)
	AverageRating float64   `json:"averageRating" db:"-"`
	ReviewCount   int       `json:"reviewCount" db:"-"`
	Products      []Product `json:"products,omitempty" db:"-"`
	Reviews       []Review  `json:"reviews,omitempty" db:"-"`
}

// ShopFilter narrows the public shop directory listing.
type ShopFilter struct {
	Name      string
	Address   string
	Category  string
	MinRating *float64
}

// RatingSummary is a shop's aggregate review score, recomputed on read.
type RatingSummary struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"reviewCount"`
}

// RoundRating rounds a mean rating to one decimal, matching the
// ROUND(AVG(rating), 1) the SQL store produces.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
