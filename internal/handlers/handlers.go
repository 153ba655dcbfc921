package handlers

import (
	"github.com/dkorolev/petalmarket/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store store.Storage
}
