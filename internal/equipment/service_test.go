package equipment

import "testing"

func newCatalog() *Service {
	return NewService(NewInMemoryRepository([]Equipment{
		{ID: 1, SupplierID: 10, Name: "Excavator", Price: 500000},
		{ID: 2, SupplierID: 20, Name: "Crane", Price: 900000},
	}))
}

func TestCreate_Validation(t *testing.T) {
	service := newCatalog()

	if _, err := service.Create(10, Equipment{Name: "", Price: 100}); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid for empty name, got %v", err)
	}
	if _, err := service.Create(10, Equipment{Name: "Drill", Price: -1}); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid for negative price, got %v", err)
	}

	created, err := service.Create(10, Equipment{Name: "Drill", Price: 12000, SupplierID: 999})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// the token's supplier wins over whatever the payload claims
	if created.SupplierID != 10 {
		t.Fatalf("expected supplier 10, got %d", created.SupplierID)
	}
}

func TestUpdateAndDelete_OwnerOnly(t *testing.T) {
	service := newCatalog()

	if _, err := service.Update(1, 20, Equipment{Name: "Hijacked", Price: 1}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign update, got %v", err)
	}

	updated, err := service.Update(1, 10, Equipment{Name: "Excavator XL", Price: 600000})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Excavator XL" || updated.Price != 600000 {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := service.Delete(1, 20); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign delete, got %v", err)
	}
	if err := service.Delete(1, 10); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.GetByID(1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListBySupplier(t *testing.T) {
	service := newCatalog()

	out, err := service.ListBySupplier(10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Excavator" {
		t.Fatalf("unexpected listing: %+v", out)
	}
}
