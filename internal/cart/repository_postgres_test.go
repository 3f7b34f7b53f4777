package cart

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetOrCreate_ScansLargePrices(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT id FROM carts").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	// prices come back from an integer column; seven-figure values in
	// the smallest currency unit are routine for heavy equipment
	itemRows := sqlmock.NewRows([]string{"id", "equipmentId", "quantity", "eid", "name", "price", "supplierId", "photo"}).
		AddRow(1, 1, 2, 1, "Excavator", int64(1000000), 10, nil).
		AddRow(2, 2, 1, 2, "Crane", int64(12000), 10, nil)
	mock.ExpectQuery("FROM cart_items ci").WithArgs(5).WillReturnRows(itemRows)

	crt, err := repo.GetOrCreate(42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(crt.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(crt.Items))
	}
	if crt.Items[0].Equipment.Price != 1000000 {
		t.Fatalf("price not scanned: %+v", crt.Items[0].Equipment)
	}
	if total := crt.Total(); total != 2012000 {
		t.Fatalf("expected total 2012000, got %d", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetOrCreate_CreatesCartOnFirstAccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT id FROM carts").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("INSERT INTO carts").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery("FROM cart_items ci").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "equipmentId", "quantity", "eid", "name", "price", "supplierId", "photo"}))

	crt, err := repo.GetOrCreate(42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if crt.ID != 9 || len(crt.Items) != 0 {
		t.Fatalf("unexpected fresh cart: %+v", crt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
