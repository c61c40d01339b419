package repository_test

import (
	"context"
	"regexp"
	"testing"

	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUserCreate_DuplicateEmail(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUserRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Email: "Reader@Example.com", Password: "x"})

	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
