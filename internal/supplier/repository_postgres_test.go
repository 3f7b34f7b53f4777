package supplier

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var supplierCols = []string{"id", "companyName", "contactPerson", "registrationNumber", "phone", "description", "email", "password", "address", "logo", "createdAt", "updatedAt", "averageRating", "reviewCount"}

func TestGetByID_IncludesAggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(supplierCols).
		AddRow(3, "Acme Machinery", "Jo Smith", "REG-1", "555-0101", nil, "acme@example.com", "hash", "1 Quarry Ln", nil, "t", "u", 4.7, 3)
	mock.ExpectQuery("FROM suppliers s").WithArgs(3).WillReturnRows(rows)

	s, err := repo.GetByID(3)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if s.CompanyName != "Acme Machinery" {
		t.Fatalf("unexpected company name %q", s.CompanyName)
	}
	if s.AverageRating != 4.7 || s.ReviewCount != 3 {
		t.Fatalf("aggregates not scanned: rating=%v count=%d", s.AverageRating, s.ReviewCount)
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

	mock.ExpectQuery("FROM suppliers s").WithArgs(9).WillReturnRows(sqlmock.NewRows(supplierCols))

	if _, err := repo.GetByID(9); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_AppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(supplierCols).
		AddRow(1, "Acme Machinery", "Jo Smith", "REG-1", "555-0101", nil, "acme@example.com", "hash", "1 Quarry Ln", nil, "t", "u", 4.7, 3).
		AddRow(2, "Acme Cranes", "Pat Doe", "REG-2", "555-0102", nil, "cranes@example.com", "hash", "2 Quarry Ln", nil, "t", "u", 5.0, 1)
	mock.ExpectQuery("ILIKE").
		WithArgs("%Acme%", 4.5).
		WillReturnRows(rows)

	out, total, err := repo.List(ListFilter{CompanyName: "Acme", AverageRating: 4.5})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(out) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(out))
	}
	if out[1].AverageRating != 5.0 {
		t.Fatalf("aggregates not scanned: %+v", out[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
