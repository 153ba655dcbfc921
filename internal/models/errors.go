package models

import "errors"

// Domain errors returned by the store. Handlers translate these into
// HTTP statuses; anything else is treated as an infrastructure failure.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrForbidden         = errors.New("no rights over this entity")
	ErrInvalidState      = errors.New("operation not allowed in current state")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrCrossShopConflict = errors.New("basket may only contain items from one shop")
	ErrEmptyBasket       = errors.New("basket is empty")
	ErrDuplicateReview   = errors.New("a review for this order already exists")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrEmailTaken        = errors.New("an account with this email already exists")
)
