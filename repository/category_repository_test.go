package repository_test

import (
	"context"
	"regexp"
	"testing"

	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestCategoryDelete(t *testing.T) {
	t.Run("unlinks books before removing the category", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := repository.NewGormCategoryRepository(gormDB)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM book_categories WHERE category_id = $1`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "categories" WHERE id = $1`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), id)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing category rolls back", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := repository.NewGormCategoryRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM book_categories`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "categories"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), uuid.New())

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryCreate_UniqueViolation(t *testing.T) {
	t.Run("maps to ErrDuplicate", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := repository.NewGormCategoryRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "categories"`)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_categories_name"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &models.Category{Name: "Poetry"})

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other constraint errors pass through", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := repository.NewGormCategoryRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "categories"`)).
			WillReturnError(&pgconn.PgError{Code: "23502", Message: "null value in column"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &models.Category{Name: "Poetry"})

		var pgErr *pgconn.PgError
		assert.ErrorAs(t, err, &pgErr)
		assert.NotErrorIs(t, err, repository.ErrDuplicate)
	})
}
