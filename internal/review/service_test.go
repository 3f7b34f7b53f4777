package review

import (
	"testing"

	"github.com/ame-market/equipment-market-backend/internal/order"
)

type stubOrders struct {
	orders map[int]order.Order
}

func (s stubOrders) GetByID(id int) (order.Order, error) {
	ord, ok := s.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return ord, nil
}

func newReviewService(orders map[int]order.Order) *Service {
	return NewService(NewInMemoryRepository(nil), stubOrders{orders: orders})
}

func TestCreate_RequiresCompletedOrder(t *testing.T) {
	service := newReviewService(map[int]order.Order{
		1: {ID: 1, UserID: 42, SupplierID: 10, Status: order.StatusCompleted},
		2: {ID: 2, UserID: 42, SupplierID: 10, Status: order.StatusInProgress},
	})

	if _, err := service.Create(42, 2, 5, "good", ""); err != ErrOrderNotCompleted {
		t.Fatalf("expected ErrOrderNotCompleted, got %v", err)
	}
	if _, err := service.Create(42, 99, 5, "good", ""); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	rev, err := service.Create(42, 1, 5, "good", "prompt delivery")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rev.SupplierID != 10 {
		t.Fatalf("expected supplier id copied from order, got %d", rev.SupplierID)
	}
	if rev.UserID != 42 || rev.OrderID != 1 {
		t.Fatalf("unexpected review ownership: %+v", rev)
	}
}

func TestCreate_OneReviewPerOrder(t *testing.T) {
	service := newReviewService(map[int]order.Order{
		1: {ID: 1, UserID: 42, SupplierID: 10, Status: order.StatusCompleted},
	})

	if _, err := service.Create(42, 1, 4, "good", ""); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := service.Create(42, 1, 5, "even better", ""); err != ErrAlreadyReviewed {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestCreate_RatingRange(t *testing.T) {
	service := newReviewService(map[int]order.Order{
		1: {ID: 1, UserID: 42, SupplierID: 10, Status: order.StatusCompleted},
	})

	for _, rating := range []int{0, 6, -1} {
		if _, err := service.Create(42, 1, rating, "x", ""); err != ErrRating {
			t.Fatalf("rating %d: expected ErrRating, got %v", rating, err)
		}
	}
}

func TestAverageRating_RoundedToOneDecimal(t *testing.T) {
	orders := map[int]order.Order{}
	for i := 1; i <= 3; i++ {
		orders[i] = order.Order{ID: i, UserID: 42, SupplierID: 10, Status: order.StatusCompleted}
	}
	service := newReviewService(orders)

	for i, rating := range []int{5, 5, 4} {
		if _, err := service.Create(42, i+1, rating, "r", ""); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	avg, err := service.AverageRating(10)
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if avg != 4.7 {
		t.Fatalf("expected 4.7, got %v", avg)
	}

	// a supplier with no reviews averages to zero
	avg, err = service.AverageRating(99)
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if avg != 0 {
		t.Fatalf("expected 0 for unreviewed supplier, got %v", avg)
	}
}

func TestUpdateAndDelete_AuthorOnly(t *testing.T) {
	service := newReviewService(map[int]order.Order{
		1: {ID: 1, UserID: 42, SupplierID: 10, Status: order.StatusCompleted},
	})

	rev, err := service.Create(42, 1, 4, "good", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := service.Update(rev.ID, 99, 5, "hijacked", ""); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign update, got %v", err)
	}
	if _, err := service.Update(rev.ID, 42, 9, "bad rating", ""); err != ErrRating {
		t.Fatalf("expected ErrRating, got %v", err)
	}

	updated, err := service.Update(rev.ID, 42, 5, "better", "after a second job")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Rating != 5 || updated.ShortReview != "better" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := service.Delete(rev.ID, 99); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign delete, got %v", err)
	}
	if err := service.Delete(rev.ID, 42); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.GetByID(rev.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
