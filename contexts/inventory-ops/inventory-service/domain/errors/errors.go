package errors

import "errors"

var (
	ErrInvalidProduct   = errors.New("name, quantity and category are required")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrProductExists    = errors.New("product already exists")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductHasStock  = errors.New("product can not be deleted while its quantity is greater than zero")
)
