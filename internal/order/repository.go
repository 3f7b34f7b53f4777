package order

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrMultipleSuppliers = errors.New("cart items span more than one supplier")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrForbidden         = errors.New("no rights for this order")
	ErrCartConflict      = errors.New("cart changed during checkout")
)

type Repository interface {
	// CreateFromCart persists the order with its items and clears the
	// source cart's items in one transaction. It fails with
	// ErrCartConflict when the cart no longer matches the snapshot,
	// which is how a concurrent double-submit is refused.
	CreateFromCart(ord Order, cartID int) (Order, error)
	GetByID(id int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListBySupplier(supplierID int) ([]Order, error)
	UpdateStatus(id int, status string) (Order, error)
	UpdateCompletionTime(id int, value string) (Order, error)
	// Delete removes the order together with its items.
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios. The cart
// clearing that Postgres performs transactionally is delegated to a
// callback so service tests can observe it.
type InMemoryRepository struct {
	mu         sync.Mutex
	orders     []Order
	nextID     int
	nextItemID int

	// ClearCart mimics the transactional cart wipe; nil means no-op.
	ClearCart func(cartID int) error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, nextItemID: 1}
}

func (r *InMemoryRepository) CreateFromCart(ord Order, cartID int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextID
	r.nextID++
	for i := range ord.Items {
		ord.Items[i].ID = r.nextItemID
		r.nextItemID++
	}

	if r.ClearCart != nil {
		if err := r.ClearCart(cartID); err != nil {
			return Order{}, err
		}
	}

	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *InMemoryRepository) ListBySupplier(supplierID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.SupplierID == supplierID {
			out = append(out, ord)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id int, status string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			ord.Status = status
			r.orders[i] = ord
			return ord, nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateCompletionTime(id int, value string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			ord.CompletionTime = &value
			r.orders[i] = ord
			return ord, nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func sortByDateDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].DateOfOrdering > orders[j].DateOfOrdering
	})
}
