package repository

import (
	"context"

	"bookstore-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookRepository defines the interface for catalog book access
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Book, int64, error)
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormBookRepository implements BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new instance of GormBookRepository
func NewGormBookRepository(db *gorm.DB) BookRepository {
	return &GormBookRepository{db: db}
}

// Create inserts the book and links it to its (already existing) categories.
func (r *GormBookRepository) Create(ctx context.Context, book *models.Book) error {
	return translate(conn(ctx, r.db).Omit("Categories.*").Create(book).Error)
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := conn(ctx, r.db).Preload("Categories").Where("id = ?", id).First(&book).Error; err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

func (r *GormBookRepository) FindAll(ctx context.Context, page, limit int) ([]models.Book, int64, error) {
	var books []models.Book
	var total int64

	if err := conn(ctx, r.db).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := conn(ctx, r.db).
		Preload("Categories").
		Scopes(paginate(page, limit)).
		Order("title").
		Order("id").
		Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *GormBookRepository) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.Book, error) {
	var books []models.Book
	if err := conn(ctx, r.db).
		Joins("JOIN book_categories bc ON bc.book_id = books.id").
		Where("bc.category_id = ?", categoryID).
		Order("title").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Update saves the scalar fields and replaces the category links.
func (r *GormBookRepository) Update(ctx context.Context, book *models.Book) error {
	return withTx(ctx, r.db, func(db *gorm.DB) error {
		result := db.Model(&models.Book{ID: book.ID}).
			Select("title", "author", "isbn", "price", "description", "cover_image").
			Updates(book)
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return db.Model(&models.Book{ID: book.ID}).Omit("Categories.*").Association("Categories").Replace(book.Categories)
	})
}

func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(db *gorm.DB) error {
		if err := db.Model(&models.Book{ID: id}).Association("Categories").Clear(); err != nil {
			return err
		}
		result := db.Where("id = ?", id).Delete(&models.Book{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
