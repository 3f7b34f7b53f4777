package main

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// The Go models and scan targets treat money as integers in the
// smallest currency unit, so the bootstrapped columns must be integer
// typed; a float column would make database/sql refuse the int scan
// for seven-figure prices.
func TestEnsureSchema_MoneyColumnsAreIntegers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	ok := sqlmock.NewResult(0, 0)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(ok)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS suppliers").WillReturnResult(ok)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS equipment[\s\S]*price BIGINT`).WillReturnResult(ok)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS carts").WillReturnResult(ok)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS cart_items").WillReturnResult(ok)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS orders[\s\S]*"totalCost" BIGINT`).WillReturnResult(ok)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS order_items").WillReturnResult(ok)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS supplier_reviews").WillReturnResult(ok)

	ensureSchema(db)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
