package services

import (
	"context"
	"strings"

	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookCache is a read-through cache for single-book lookups. Get reports the
// version it looked under; Set must be given that version so a write racing
// an Invalidate lands under a key that is no longer read.
type BookCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.BookResponse, int64, bool)
	Set(ctx context.Context, book *models.BookResponse, version int64)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// CatalogService defines the interface for book and category management.
type CatalogService interface {
	CreateBook(ctx context.Context, req *models.BookRequest) (*models.BookResponse, *ServiceError)
	GetBook(ctx context.Context, id uuid.UUID) (*models.BookResponse, *ServiceError)
	ListBooks(ctx context.Context, page, limit int) (*models.BookListResponse, *ServiceError)
	ListBooksByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.BookResponse, *ServiceError)
	UpdateBook(ctx context.Context, id uuid.UUID, req *models.BookRequest) (*models.BookResponse, *ServiceError)
	DeleteBook(ctx context.Context, id uuid.UUID) *ServiceError

	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, *ServiceError)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, *ServiceError)
	ListCategories(ctx context.Context) ([]models.Category, *ServiceError)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) (*models.Category, *ServiceError)
	DeleteCategory(ctx context.Context, id uuid.UUID) *ServiceError
}

type catalogServiceImpl struct {
	books      repository.BookRepository
	categories repository.CategoryRepository
	cache      BookCache
	logger     *zap.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(
	books repository.BookRepository,
	categories repository.CategoryRepository,
	cache BookCache,
	logger *zap.Logger,
) CatalogService {
	return &catalogServiceImpl{books: books, categories: categories, cache: cache, logger: logger}
}

func (s *catalogServiceImpl) CreateBook(ctx context.Context, req *models.BookRequest) (*models.BookResponse, *ServiceError) {
	if req.Price.IsNegative() {
		return nil, validationFailed("Price must not be negative")
	}
	categories, svcErr := s.resolveCategories(ctx, req.CategoryIDs)
	if svcErr != nil {
		return nil, svcErr
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price.Round(2),
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Categories:  categories,
	}
	if err := s.books.Create(ctx, book); err != nil {
		if isDuplicate(err) {
			return nil, conflict("A book with this ISBN already exists")
		}
		s.logger.Error("Failed to create book", zap.Error(err))
		return nil, internal("Failed to create book")
	}

	s.logger.Info("Book created", zap.String("book_id", book.ID.String()), zap.String("isbn", book.ISBN))
	resp := models.ToBookResponse(book)
	return &resp, nil
}

func (s *catalogServiceImpl) GetBook(ctx context.Context, id uuid.UUID) (*models.BookResponse, *ServiceError) {
	var version int64
	if s.cache != nil {
		cached, v, ok := s.cache.Get(ctx, id)
		if ok {
			return cached, nil
		}
		version = v
	}

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Book", id)
		}
		s.logger.Error("Failed to fetch book", zap.String("book_id", id.String()), zap.Error(err))
		return nil, internal("Failed to fetch book")
	}

	resp := models.ToBookResponse(book)
	if s.cache != nil {
		s.cache.Set(ctx, &resp, version)
	}
	return &resp, nil
}

func (s *catalogServiceImpl) ListBooks(ctx context.Context, page, limit int) (*models.BookListResponse, *ServiceError) {
	books, total, err := s.books.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list books", zap.Error(err))
		return nil, internal("Failed to fetch books")
	}
	resp := &models.BookListResponse{
		Books: make([]models.BookResponse, 0, len(books)),
		Meta:  models.NewMetaData(page, limit, total),
	}
	for i := range books {
		resp.Books = append(resp.Books, models.ToBookResponse(&books[i]))
	}
	return resp, nil
}

func (s *catalogServiceImpl) ListBooksByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.BookResponse, *ServiceError) {
	if _, svcErr := s.GetCategory(ctx, categoryID); svcErr != nil {
		return nil, svcErr
	}
	books, err := s.books.FindByCategoryID(ctx, categoryID)
	if err != nil {
		s.logger.Error("Failed to list books by category", zap.String("category_id", categoryID.String()), zap.Error(err))
		return nil, internal("Failed to fetch books")
	}
	resp := make([]models.BookResponse, 0, len(books))
	for i := range books {
		resp = append(resp, models.ToBookResponse(&books[i]))
	}
	return resp, nil
}

// UpdateBook replaces a book's fields. Prices already captured in order
// items are not affected.
func (s *catalogServiceImpl) UpdateBook(ctx context.Context, id uuid.UUID, req *models.BookRequest) (*models.BookResponse, *ServiceError) {
	if req.Price.IsNegative() {
		return nil, validationFailed("Price must not be negative")
	}
	categories, svcErr := s.resolveCategories(ctx, req.CategoryIDs)
	if svcErr != nil {
		return nil, svcErr
	}

	book := &models.Book{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price.Round(2),
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Categories:  categories,
	}
	if err := s.books.Update(ctx, book); err != nil {
		switch {
		case isNotFound(err):
			return nil, notFound("Book", id)
		case isDuplicate(err):
			return nil, conflict("A book with this ISBN already exists")
		}
		s.logger.Error("Failed to update book", zap.String("book_id", id.String()), zap.Error(err))
		return nil, internal("Failed to update book")
	}
	s.invalidate(ctx, id)

	resp := models.ToBookResponse(book)
	return &resp, nil
}

func (s *catalogServiceImpl) DeleteBook(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.books.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Book", id)
		}
		s.logger.Error("Failed to delete book", zap.String("book_id", id.String()), zap.Error(err))
		return internal("Failed to delete book")
	}
	s.invalidate(ctx, id)
	s.logger.Info("Book deleted", zap.String("book_id", id.String()))
	return nil
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, *ServiceError) {
	category := &models.Category{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if category.Name == "" {
		return nil, validationFailed("Category name is required")
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if isDuplicate(err) {
			return nil, conflict("A category with this name already exists")
		}
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, internal("Failed to create category")
	}
	return category, nil
}

func (s *catalogServiceImpl) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, *ServiceError) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Category", id)
		}
		s.logger.Error("Failed to fetch category", zap.String("category_id", id.String()), zap.Error(err))
		return nil, internal("Failed to fetch category")
	}
	return category, nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, internal("Failed to fetch categories")
	}
	return categories, nil
}

func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) (*models.Category, *ServiceError) {
	category := &models.Category{ID: id, Name: strings.TrimSpace(req.Name), Description: req.Description}
	if category.Name == "" {
		return nil, validationFailed("Category name is required")
	}
	if err := s.categories.Update(ctx, category); err != nil {
		switch {
		case isNotFound(err):
			return nil, notFound("Category", id)
		case isDuplicate(err):
			return nil, conflict("A category with this name already exists")
		}
		s.logger.Error("Failed to update category", zap.String("category_id", id.String()), zap.Error(err))
		return nil, internal("Failed to update category")
	}
	return category, nil
}

// DeleteCategory removes the category and its links to books. Cached books
// that listed it are invalidated.
func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) *ServiceError {
	var linked []models.Book
	if s.cache != nil {
		books, err := s.books.FindByCategoryID(ctx, id)
		if err != nil {
			s.logger.Error("Failed to list books by category", zap.String("category_id", id.String()), zap.Error(err))
			return internal("Failed to delete category")
		}
		linked = books
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Category", id)
		}
		s.logger.Error("Failed to delete category", zap.String("category_id", id.String()), zap.Error(err))
		return internal("Failed to delete category")
	}

	for _, book := range linked {
		s.invalidate(ctx, book.ID)
	}
	s.logger.Info("Category deleted", zap.String("category_id", id.String()), zap.Int("unlinked_books", len(linked)))
	return nil
}

// resolveCategories loads the given categories and fails if any is missing.
func (s *catalogServiceImpl) resolveCategories(ctx context.Context, ids []uuid.UUID) ([]models.Category, *ServiceError) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to resolve categories", zap.Error(err))
		return nil, internal("Failed to resolve categories")
	}
	found := make(map[uuid.UUID]bool, len(categories))
	for _, c := range categories {
		found[c.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, notFound("Category", id)
		}
	}
	return categories, nil
}

func (s *catalogServiceImpl) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}
