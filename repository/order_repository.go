package repository

import (
	"context"

	"bookstore-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) error
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order together with its items.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return conn(ctx, r.db).Create(order).Error
}

// FindByUserID retrieves every order of a user, newest first
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := conn(ctx, r.db).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll retrieves all orders with pagination
func (r *GormOrderRepository) FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	if err := conn(ctx, r.db).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// id breaks order_date ties so pages neither overlap nor skip rows.
	if err := conn(ctx, r.db).
		Preload("OrderItems").
		Scopes(paginate(page, limit)).
		Order("order_date DESC").
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := conn(ctx, r.db).Preload("OrderItems").Where("id = ?", orderID).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// FindByIDAndUserID retrieves a specific order of a user. Orders of other
// users are reported as ErrNotFound.
func (r *GormOrderRepository) FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order

	if err := conn(ctx, r.db).
		Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		return nil, translate(err)
	}

	return &order, nil
}

// UpdateStatus sets the status of an order regardless of its current status.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) error {
	result := conn(ctx, r.db).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
