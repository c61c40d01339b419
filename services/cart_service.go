package services

import (
	"context"

	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService defines the interface for shopping cart business logic.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, *ServiceError)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartResponse, *ServiceError)
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, *ServiceError)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *ServiceError
	ProvisionCart(ctx context.Context, userID uuid.UUID) *ServiceError
}

type cartServiceImpl struct {
	carts  repository.CartRepository
	books  repository.BookRepository
	tx     repository.Transactor
	logger *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(
	carts repository.CartRepository,
	books repository.BookRepository,
	tx repository.Transactor,
	logger *zap.Logger,
) CartService {
	return &cartServiceImpl{carts: carts, books: books, tx: tx, logger: logger}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, *ServiceError) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Cart for user", userID)
		}
		s.logger.Error("Failed to fetch cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internal("Failed to fetch cart")
	}
	resp := models.ToCartResponse(cart)
	return &resp, nil
}

// AddItem puts a book in the user's cart. When the cart already holds the
// book, its quantity is replaced by the requested one.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartResponse, *ServiceError) {
	if req.Quantity < 1 {
		return nil, validationFailed("Quantity must be at least 1")
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			if isNotFound(err) {
				return notFound("Cart for user", userID)
			}
			return err
		}

		if _, err := s.books.FindByID(ctx, req.BookID); err != nil {
			if isNotFound(err) {
				return notFound("Book", req.BookID)
			}
			return err
		}

		existing, err := s.carts.FindItemByBook(ctx, cart.ID, req.BookID)
		switch {
		case err == nil:
			return s.carts.UpdateItemQuantity(ctx, existing.ID, req.Quantity)
		case isNotFound(err):
			return s.carts.CreateItem(ctx, &models.CartItem{
				CartID:   cart.ID,
				BookID:   req.BookID,
				Quantity: req.Quantity,
			})
		default:
			return err
		}
	})
	if err != nil {
		svcErr := asServiceError(err, "Failed to add item to cart")
		if svcErr.StatusCode >= 500 {
			s.logger.Error("Failed to add cart item", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return nil, svcErr
	}

	return s.GetCart(ctx, userID)
}

// UpdateItemQuantity changes the quantity of one of the user's cart lines.
// A quantity of zero removes the line.
func (s *cartServiceImpl) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, *ServiceError) {
	if req.Quantity == nil || *req.Quantity < 0 {
		return nil, validationFailed("Quantity must not be negative")
	}

	item, svcErr := s.findOwnedItem(ctx, userID, itemID)
	if svcErr != nil {
		return nil, svcErr
	}

	var err error
	if *req.Quantity == 0 {
		err = s.carts.DeleteItem(ctx, item.ID)
	} else {
		err = s.carts.UpdateItemQuantity(ctx, item.ID, *req.Quantity)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Cart item", itemID)
		}
		s.logger.Error("Failed to update cart item", zap.String("item_id", itemID.String()), zap.Error(err))
		return nil, internal("Failed to update cart item")
	}

	return s.GetCart(ctx, userID)
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *ServiceError {
	item, svcErr := s.findOwnedItem(ctx, userID, itemID)
	if svcErr != nil {
		return svcErr
	}
	if err := s.carts.DeleteItem(ctx, item.ID); err != nil {
		if isNotFound(err) {
			return notFound("Cart item", itemID)
		}
		s.logger.Error("Failed to remove cart item", zap.String("item_id", itemID.String()), zap.Error(err))
		return internal("Failed to remove cart item")
	}
	return nil
}

// ProvisionCart creates the user's cart. Called once, at registration.
func (s *cartServiceImpl) ProvisionCart(ctx context.Context, userID uuid.UUID) *ServiceError {
	if err := s.carts.Create(ctx, &models.Cart{UserID: userID}); err != nil {
		s.logger.Error("Failed to create cart", zap.String("user_id", userID.String()), zap.Error(err))
		return internal("Failed to create cart")
	}
	return nil
}

// findOwnedItem resolves a line through the user's own cart, so lines of
// other carts are not found.
func (s *cartServiceImpl) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, *ServiceError) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Cart for user", userID)
		}
		return nil, internal("Failed to fetch cart")
	}
	item, err := s.carts.FindItem(ctx, cart.ID, itemID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Cart item", itemID)
		}
		return nil, internal("Failed to fetch cart item")
	}
	return item, nil
}
