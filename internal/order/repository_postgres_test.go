package order

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func checkoutOrder() Order {
	return Order{
		UserID:          42,
		SupplierID:      10,
		DeliveryAddress: "12 Harbor Rd",
		TotalCost:       1012000,
		Status:          StatusUnderReview,
		OrderName:       "Excavator x 2; Drill x 1",
		DateOfOrdering:  "2026-08-28T10:00:00Z",
		Items: []OrderItem{
			{EquipmentID: 1, Quantity: 2},
			{EquipmentID: 2, Quantity: 1},
		},
	}
}

func TestCreateFromCart_CommitsWholeCheckout(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(7, 1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(7, 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	ord, err := repo.CreateFromCart(checkoutOrder(), 5)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if ord.ID != 7 {
		t.Fatalf("expected order id 7, got %d", ord.ID)
	}
	if ord.Items[0].ID != 100 || ord.Items[1].ID != 101 {
		t.Fatalf("item ids not assigned: %+v", ord.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateFromCart_RollsBackOnCartConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(7, 1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(7, 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	// a concurrent checkout already consumed one of the cart lines
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	if _, err := repo.CreateFromCart(checkoutOrder(), 5); err != ErrCartConflict {
		t.Fatalf("expected ErrCartConflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_AttachesItemsAndReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	orderRows := sqlmock.NewRows([]string{"id", "userId", "supplierId", "deliveryAddress", "totalCost", "status", "completionTime", "orderName", "description", "dateOfOrdering"}).
		AddRow(7, 42, 10, "12 Harbor Rd", 1012000, StatusCompleted, nil, "Excavator x 2", nil, "2026-08-28T10:00:00Z")
	mock.ExpectQuery("FROM orders WHERE id").WithArgs(7).WillReturnRows(orderRows)

	itemRows := sqlmock.NewRows([]string{"id", "orderId", "equipmentId", "quantity", "eid", "name", "price", "photo"}).
		AddRow(100, 7, 1, 2, 1, "Excavator", 500000, nil)
	mock.ExpectQuery("FROM order_items oi").WillReturnRows(itemRows)

	reviewRows := sqlmock.NewRows([]string{"orderId", "id", "rating", "shortReview", "description", "firstName", "lastName"}).
		AddRow(7, 3, 5, "great", "prompt delivery", "Ann", "Lee")
	mock.ExpectQuery("FROM supplier_reviews r").WillReturnRows(reviewRows)

	ord, err := repo.GetByID(7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(ord.Items) != 1 || ord.Items[0].Equipment.Name != "Excavator" {
		t.Fatalf("items not attached: %+v", ord.Items)
	}
	if ord.Review == nil || ord.Review.Rating != 5 {
		t.Fatalf("review not attached: %+v", ord.Review)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(9); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
