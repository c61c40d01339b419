package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// UpdateOrderStatusRequest is the admin status update payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AddCartItemRequest adds a book to the cart or replaces the quantity of the
// line already holding that book.
type AddCartItemRequest struct {
	BookID   uuid.UUID `json:"book_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest sets the quantity of a cart line. Zero removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// BookRequest is used for both creating and replacing a book.
type BookRequest struct {
	Title       string          `json:"title" binding:"required,notblank,max=255"`
	Author      string          `json:"author" binding:"required,notblank,max=255"`
	ISBN        string          `json:"isbn" binding:"required,notblank,max=32"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CoverImage  string          `json:"cover_image" binding:"omitempty,max=512"`
	CategoryIDs []uuid.UUID     `json:"category_ids"`
}

// CategoryRequest is used for both creating and replacing a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=128"`
	Description string `json:"description"`
}

// RegisterRequest is the user registration payload.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	RepeatPassword  string `json:"repeat_password" binding:"required,eqfield=Password"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	ShippingAddress string `json:"shipping_address"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
