package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewAdapterWithDB(db), mock, db
}

func productRowColumns() []string {
	return []string{"id", "name", "photo", "category", "price", "stock", "created_at", "updated_at"}
}

func orderRowColumns() []string {
	return []string{
		"id", "user_id", "shipping_info", "order_items", "subtotal", "tax",
		"shipping_charges", "discount", "total", "status", "created_at", "updated_at",
	}
}

func TestAdapter_FindProducts_BuildsFilter(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		querySelectProducts+" WHERE created_at >= $1 AND created_at <= $2 AND category = $3 AND stock = 0 ORDER BY created_at ASC, id ASC",
	)).
		WithArgs(from, to, "electronics").
		WillReturnRows(sqlmock.NewRows(productRowColumns()).
			AddRow("p1", "Phone", "phone.png", "electronics", "499.90", 0, created, created))

	products, err := adapter.FindProducts(context.Background(), storage.ProductFilter{
		Created:    storage.TimeRange{From: from, To: to},
		Category:   "electronics",
		OutOfStock: true,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "p1", products[0].ID)
	require.True(t, decimal.RequireFromString("499.9").Equal(products[0].Price))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_CountProducts(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryCountProducts)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery(regexp.QuoteMeta(queryCountProducts + " WHERE category = $1")).
		WithArgs("books").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	n, err := adapter.CountProducts(context.Background(), storage.ProductFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(7), n)

	n, err = adapter.CountProducts(context.Background(), storage.ProductFilter{Category: "books"})
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_CountPropagatesErrors(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryCountUsers + " WHERE gender = $1")).
		WithArgs("female").
		WillReturnError(errors.New("connection reset"))

	_, err := adapter.CountUsers(context.Background(), storage.UserFilter{Gender: storage.GenderFemale})
	require.ErrorContains(t, err, "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_DistinctCategories(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryDistinctCategories)).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("books").AddRow("games"))

	cats, err := adapter.DistinctCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"books", "games"}, cats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_SearchProducts_Pagination(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	maxPrice := 100.0
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryCountProducts + " WHERE name ILIKE $1 AND price <= $2")).
		WithArgs(`%50\%%`, maxPrice).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(9)))
	mock.ExpectQuery(regexp.QuoteMeta(
		querySelectProducts+" WHERE name ILIKE $1 AND price <= $2 ORDER BY price DESC, created_at ASC, id ASC LIMIT $3 OFFSET $4",
	)).
		WithArgs(`%50\%%`, maxPrice, 8, 8).
		WillReturnRows(sqlmock.NewRows(productRowColumns()).
			AddRow("p9", "50% off mug", "", "kitchen", "9.99", 4, created, created))

	page, total, err := adapter.SearchProducts(context.Background(), storage.ProductSearch{
		Name:     "50%",
		MaxPrice: &maxPrice,
		Sort:     "desc",
		Limit:    8,
		Offset:   8,
	})
	require.NoError(t, err)
	require.Equal(t, int64(9), total)
	require.Len(t, page, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetProduct_NotFound(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryGetProduct)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(productRowColumns()))

	_, err := adapter.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_UpdateAndDelete_NoRowsIsNotFound(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(queryUpdateProduct)).
		WithArgs("p1", "n", "", "c", sqlmock.AnyArg(), 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(queryDeleteOrder)).
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(queryDeleteUser)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.UpdateProduct(context.Background(), &storage.Product{ID: "p1", Name: "n", Category: "c", Stock: 1})
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = adapter.DeleteOrder(context.Background(), "o1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, adapter.DeleteUser(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindOrders_NewestWithLimit(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(querySelectOrders + " ORDER BY created_at DESC, id ASC LIMIT $1")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(orderRowColumns()).
			AddRow(
				"o1", "u1",
				[]byte(`{"address":"1 Main St","city":"Springfield"}`),
				[]byte(`[{"productId":"p1","name":"Mug","price":"9.5","quantity":2},{"productId":"p2","name":"Pen","price":"1","quantity":1}]`),
				"20.00", nil, "5", "2.5", "22.50",
				storage.StatusShipped, created, created,
			))

	orders, err := adapter.FindOrders(context.Background(), storage.OrderFilter{Newest: true, Limit: 4})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	require.Equal(t, "Springfield", o.ShippingInfo.City)
	require.Len(t, o.Items, 2)
	require.Equal(t, 2, o.Items[0].Quantity)
	require.True(t, o.Total.Valid)
	require.Equal(t, "22.5", o.Total.Decimal.String())
	require.False(t, o.Tax.Valid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_CreateOrder(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	order := &storage.Order{
		ID:        "o1",
		UserID:    "u1",
		Items:     []storage.OrderItem{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)}},
		Total:     decimal.NewNullDecimal(decimal.NewFromInt(10)),
		Status:    storage.StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta(queryInsertOrder)).
		WithArgs(
			"o1", "u1",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			storage.StatusProcessing, now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.CreateOrder(context.Background(), order))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_ValidateSchema(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs("products").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := adapter.ValidateSchema(context.Background())
	require.ErrorContains(t, err, "users table does not exist")
	require.NoError(t, mock.ExpectationsWereMet())
}
