package services

import (
	"context"
	"strings"
	"time"

	"bookstore-service/events"
	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventEmitter publishes domain events. *events.Emitter implements it.
type EventEmitter interface {
	Emit(ctx context.Context, event interface{}) error
}

// OrderService defines the interface for order business logic.
type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.OrderResponse, *ServiceError)
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]models.OrderResponse, *ServiceError)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.OrderResponse, *ServiceError)
	GetOrderItems(ctx context.Context, userID, orderID uuid.UUID) ([]models.OrderItemResponse, *ServiceError)
	GetOrderItem(ctx context.Context, userID, orderID, itemID uuid.UUID) (*models.OrderItemResponse, *ServiceError)
	ListAllOrders(ctx context.Context, page, limit int) (*models.OrderListResponse, *ServiceError)
}

// orderServiceImpl implements OrderService.
type orderServiceImpl struct {
	carts   repository.CartRepository
	orders  repository.OrderRepository
	tx      repository.Transactor
	emitter EventEmitter
	logger  *zap.Logger
	now     func() time.Time
}

// NewOrderService creates a new OrderService. emitter may be nil.
func NewOrderService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	tx repository.Transactor,
	emitter EventEmitter,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		carts:   carts,
		orders:  orders,
		tx:      tx,
		emitter: emitter,
		logger:  logger,
		now:     time.Now,
	}
}

// MaterializeOrder turns the cart's lines into order lines priced at each
// book's current price. The total is accumulated in decimal from zero, so an
// empty cart yields an order with no lines and a zero total.
func MaterializeOrder(cart *models.Cart, shippingAddress string, at time.Time) *models.Order {
	order := &models.Order{
		ID:              uuid.New(),
		UserID:          cart.UserID,
		OrderDate:       at,
		ShippingAddress: shippingAddress,
		Status:          models.OrderStatusPending,
		Total:           decimal.Zero,
		OrderItems:      make([]models.OrderItem, 0, len(cart.CartItems)),
	}
	for _, line := range cart.CartItems {
		item := models.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			BookID:   line.BookID,
			Quantity: line.Quantity,
			Price:    line.Book.Price,
		}
		order.OrderItems = append(order.OrderItems, item)
		order.Total = order.Total.Add(item.Amount())
	}
	return order
}

// CreateOrder checks out the user's cart. Reading the cart, writing the order
// and emptying the cart happen in one transaction; the cart row stays locked
// until it commits.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.OrderResponse, *ServiceError) {
	address := strings.TrimSpace(req.ShippingAddress)
	if address == "" {
		return nil, validationFailed("Shipping address is required")
	}

	var order *models.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			if isNotFound(err) {
				return notFound("Cart for user", userID)
			}
			return err
		}

		order = MaterializeOrder(cart, address, s.now())
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}
		return s.carts.ClearItems(ctx, cart.ID)
	})
	if err != nil {
		svcErr := asServiceError(err, "Failed to create order")
		if svcErr.StatusCode >= 500 {
			s.logger.Error("Checkout failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return nil, svcErr
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(order.OrderItems)),
		zap.String("total", models.MoneyString(order.Total)),
	)
	s.emit(ctx, events.NewOrderCreated(order, s.now()), order.ID)

	resp := models.ToOrderResponse(order)
	return &resp, nil
}

// GetUserOrders returns the user's orders, newest first.
func (s *orderServiceImpl) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]models.OrderResponse, *ServiceError) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internal("Failed to fetch orders")
	}
	resp := make([]models.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, models.ToOrderResponse(&orders[i]))
	}
	return resp, nil
}

// UpdateStatus sets an order's status. Any status may follow any other.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.OrderResponse, *ServiceError) {
	status, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		return nil, validationFailed("Invalid order status: " + req.Status)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if isNotFound(err) {
			return nil, notFound("Order", orderID)
		}
		s.logger.Error("Failed to update order status", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internal("Failed to update order status")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Order", orderID)
		}
		return nil, internal("Failed to fetch order")
	}

	s.logger.Info("Order status updated", zap.String("order_id", orderID.String()), zap.String("status", string(status)))
	s.emit(ctx, events.NewOrderStatusChanged(orderID, status, s.now()), orderID)

	resp := models.ToOrderResponse(order)
	return &resp, nil
}

// GetOrderItems returns the lines of one of the user's orders. Orders of
// other users are reported as not found.
func (s *orderServiceImpl) GetOrderItems(ctx context.Context, userID, orderID uuid.UUID) ([]models.OrderItemResponse, *ServiceError) {
	order, svcErr := s.findOwnedOrder(ctx, userID, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	items := make([]models.OrderItemResponse, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, models.ToOrderItemResponse(item))
	}
	return items, nil
}

func (s *orderServiceImpl) GetOrderItem(ctx context.Context, userID, orderID, itemID uuid.UUID) (*models.OrderItemResponse, *ServiceError) {
	order, svcErr := s.findOwnedOrder(ctx, userID, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	for _, item := range order.OrderItems {
		if item.ID == itemID {
			resp := models.ToOrderItemResponse(item)
			return &resp, nil
		}
	}
	return nil, notFound("Order item", itemID)
}

// ListAllOrders returns every order, paginated, for administrators.
func (s *orderServiceImpl) ListAllOrders(ctx context.Context, page, limit int) (*models.OrderListResponse, *ServiceError) {
	orders, total, err := s.orders.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list all orders", zap.Error(err))
		return nil, internal("Failed to fetch orders")
	}
	resp := &models.OrderListResponse{
		Orders: make([]models.OrderResponse, 0, len(orders)),
		Meta:   models.NewMetaData(page, limit, total),
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, models.ToOrderResponse(&orders[i]))
	}
	return resp, nil
}

func (s *orderServiceImpl) findOwnedOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Order", orderID)
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internal("Failed to fetch order")
	}
	return order, nil
}

// emit publishes after the write has committed; failures are only logged.
func (s *orderServiceImpl) emit(ctx context.Context, event interface{}, orderID uuid.UUID) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Warn("Failed to publish order event", zap.String("order_id", orderID.String()), zap.Error(err))
	}
}
