package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoneyString renders an amount with exactly two decimals.
func MoneyString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type OrderItemResponse struct {
	ID       uuid.UUID `json:"id"`
	BookID   uuid.UUID `json:"book_id"`
	Quantity int       `json:"quantity"`
	Price    string    `json:"price"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	OrderItems      []OrderItemResponse `json:"order_items"`
	OrderDate       time.Time           `json:"order_date"`
	ShippingAddress string              `json:"shipping_address"`
	Total           string              `json:"total"`
	Status          OrderStatus         `json:"status"`
}

type CartItemResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	BookTitle string    `json:"book_title"`
	Quantity  int       `json:"quantity"`
}

type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	CartItems []CartItemResponse `json:"cart_items"`
}

type BookResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	ISBN        string      `json:"isbn"`
	Price       string      `json:"price"`
	Description string      `json:"description"`
	CoverImage  string      `json:"cover_image"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ShippingAddress string    `json:"shipping_address"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MetaData describes one page of a paginated listing.
type MetaData struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

func NewMetaData(page, limit int, total int64) MetaData {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return MetaData{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
		HasMore:    total > int64(page*limit),
	}
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Meta   MetaData        `json:"meta"`
}

type BookListResponse struct {
	Books []BookResponse `json:"books"`
	Meta  MetaData       `json:"meta"`
}

func ToOrderItemResponse(i OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:       i.ID,
		BookID:   i.BookID,
		Quantity: i.Quantity,
		Price:    MoneyString(i.Price),
	}
}

func ToOrderResponse(o *Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, ToOrderItemResponse(it))
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		OrderItems:      items,
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		Total:           MoneyString(o.Total),
		Status:          o.Status,
	}
}

func ToCartResponse(c *Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.CartItems))
	for _, it := range c.CartItems {
		items = append(items, CartItemResponse{
			ID:        it.ID,
			BookID:    it.BookID,
			BookTitle: it.Book.Title,
			Quantity:  it.Quantity,
		})
	}
	return CartResponse{ID: c.ID, UserID: c.UserID, CartItems: items}
}

func ToBookResponse(b *Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       MoneyString(b.Price),
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CategoryIDs: b.CategoryIDs(),
	}
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
	}
}
