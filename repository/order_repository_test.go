package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumns = []string{"id", "user_id", "order_date", "shipping_address", "status", "total", "created_at", "updated_at"}

func TestOrderCreate_InsertsOrderAndItems(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	orderID := uuid.New()
	order := &models.Order{
		ID:              orderID,
		UserID:          uuid.New(),
		OrderDate:       time.Now(),
		ShippingAddress: "1 Main St",
		Status:          models.OrderStatusPending,
		Total:           decimal.RequireFromString("21.00"),
		OrderItems: []models.OrderItem{
			{ID: uuid.New(), OrderID: orderID, BookID: uuid.New(), Quantity: 2, Price: decimal.RequireFromString("10.50")},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "order_items"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), order)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderFindByUserID_NewestFirstWithItems(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	userID := uuid.New()
	newer, older := uuid.New(), uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(orderColumns).
		AddRow(newer, userID, now, "1 Main St", "PENDING", "10.00", now, now).
		AddRow(older, userID, now.Add(-time.Hour), "1 Main St", "COMPLETED", "5.50", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE user_id = $1 ORDER BY order_date DESC`)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "book_id", "quantity", "price"}).
			AddRow(uuid.New(), newer, uuid.New(), 1, "10.00").
			AddRow(uuid.New(), older, uuid.New(), 1, "5.50"))

	orders, err := repo.FindByUserID(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer, orders[0].ID)
	assert.Equal(t, "10.00", orders[0].Total.StringFixed(2))
	assert.Len(t, orders[0].OrderItems, 1)
	assert.Equal(t, models.OrderStatusCompleted, orders[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderFindByIDAndUserID_OtherUserNotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE id = $1 AND user_id = $2`)).
		WillReturnRows(sqlmock.NewRows(orderColumns))

	order, err := repo.FindByIDAndUserID(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, order)
}

func TestOrderUpdateStatus(t *testing.T) {
	t.Run("updates existing order", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := repository.NewGormOrderRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET "status"=$1`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateStatus(context.Background(), uuid.New(), models.OrderStatusConfirmed)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing order", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := repository.NewGormOrderRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.UpdateStatus(context.Background(), uuid.New(), models.OrderStatusCancelled)

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestOrderFindAll_StableOrderingAcrossPages(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" ORDER BY order_date DESC,id LIMIT $1 OFFSET $2`)).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(id, uuid.New(), now, "1 Main St", "PENDING", "7.00", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "book_id", "quantity", "price"}).
			AddRow(uuid.New(), id, uuid.New(), 1, "7.00"))

	orders, total, err := repo.FindAll(context.Background(), 2, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].OrderItems, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
