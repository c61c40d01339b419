package repository

import (
	"context"

	"bookstore-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines the interface for cart data access
type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error)
	FindItemByBook(ctx context.Context, cartID, bookID uuid.UUID) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new instance of GormCartRepository
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(cart).Error
}

// FindByUserID loads the user's cart with its items and their current books.
func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return r.findByUserID(conn(ctx, r.db), userID)
}

// FindByUserIDForUpdate is FindByUserID with the cart row locked until the
// surrounding transaction ends, so concurrent checkouts of one cart serialize.
func (r *GormCartRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return r.findByUserID(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *GormCartRepository) findByUserID(db *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := db.
		Preload("CartItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Preload("CartItems.Book").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

// FindItem returns the line only if it belongs to the given cart.
func (r *GormCartRepository) FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := conn(ctx, r.db).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *GormCartRepository) FindItemByBook(ctx context.Context, cartID, bookID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := conn(ctx, r.db).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *GormCartRepository) CreateItem(ctx context.Context, item *models.CartItem) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(item).Error
}

func (r *GormCartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	result := conn(ctx, r.db).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", itemID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearItems deletes every line of the cart. The cart row itself is kept.
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return conn(ctx, r.db).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
