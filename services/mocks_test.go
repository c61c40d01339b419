package services

import (
	"context"
	"time"

	"bookstore-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Mocks for Dependencies ---

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return m.Called(ctx, cart).Error(0)
}
func (m *MockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}
func (m *MockCartRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}
func (m *MockCartRepository) FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}
func (m *MockCartRepository) FindItemByBook(ctx context.Context, cartID, bookID uuid.UUID) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}
func (m *MockCartRepository) CreateItem(ctx context.Context, item *models.CartItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockCartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return m.Called(ctx, itemID, quantity).Error(0)
}
func (m *MockCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return m.Called(ctx, itemID).Error(0)
}
func (m *MockCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return m.Called(ctx, cartID).Error(0)
}

type MockBookRepository struct{ mock.Mock }

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	return m.Called(ctx, book).Error(0)
}
func (m *MockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}
func (m *MockBookRepository) FindAll(ctx context.Context, page, limit int) ([]models.Book, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}
func (m *MockBookRepository) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.Book, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}
func (m *MockBookRepository) Update(ctx context.Context, book *models.Book) error {
	return m.Called(ctx, book).Error(0)
}
func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *MockCategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}
func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}
func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockBookCache struct{ mock.Mock }

func (m *MockBookCache) Get(ctx context.Context, id uuid.UUID) (*models.BookResponse, int64, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Bool(2)
	}
	return args.Get(0).(*models.BookResponse), args.Get(1).(int64), args.Bool(2)
}
func (m *MockBookCache) Set(ctx context.Context, book *models.BookResponse, version int64) {
	m.Called(ctx, book, version)
}
func (m *MockBookCache) Invalidate(ctx context.Context, id uuid.UUID) {
	m.Called(ctx, id)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) GenerateAccessToken(userID, email, role string) (string, time.Time, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// passthroughTransactor runs fn with the caller's context.
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
