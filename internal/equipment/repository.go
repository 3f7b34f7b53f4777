package equipment

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("equipment not found")

type Repository interface {
	GetByID(id int) (Equipment, error)
	List() ([]Equipment, error)
	ListBySupplier(supplierID int) ([]Equipment, error)
	Create(e Equipment) (Equipment, error)
	Update(id int, e Equipment) (Equipment, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	items  []Equipment
	nextID int
}

func NewInMemoryRepository(seed []Equipment) *InMemoryRepository {
	repo := &InMemoryRepository{
		items:  make([]Equipment, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, e := range seed {
		repo.items = append(repo.items, e)
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByID(id int) (Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.items {
		if e.ID == id {
			return e, nil
		}
	}

	return Equipment{}, ErrNotFound
}

func (r *InMemoryRepository) List() ([]Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Equipment, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *InMemoryRepository) ListBySupplier(supplierID int) ([]Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Equipment, 0)
	for _, e := range r.items {
		if e.SupplierID == supplierID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(e Equipment) (Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == 0 {
		e.ID = r.nextID
		r.nextID++
	}

	r.items = append(r.items, e)
	return e, nil
}

func (r *InMemoryRepository) Update(id int, upd Equipment) (Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.items {
		if e.ID == id {
			e.Name = upd.Name
			e.Model = upd.Model
			e.Description = upd.Description
			e.Price = upd.Price
			e.SerialNumber = upd.SerialNumber
			if upd.Photo != nil {
				e.Photo = upd.Photo
			}
			if upd.UpdatedAt != "" {
				e.UpdatedAt = upd.UpdatedAt
			}
			r.items[i] = e
			return e, nil
		}
	}

	return Equipment{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.items {
		if e.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
