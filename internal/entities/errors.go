package entities

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidProduct   = errors.New("invalid product data")

	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")

	ErrInvalidSignature     = errors.New("invalid payment signature")
	ErrPaymentConflict      = errors.New("order already paid with another payment")
	ErrOrderNotPayable      = errors.New("order can not be paid in its current state")
	ErrPaymentSessionFailed = errors.New("failed to create payment session")

	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)
