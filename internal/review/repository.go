package review

import (
	"errors"
	"math"
	"sort"
	"sync"
)

var (
	ErrNotFound          = errors.New("review not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNotCompleted = errors.New("order is not completed")
	ErrAlreadyReviewed   = errors.New("review already exists for this order")
	ErrRating            = errors.New("rating must be between 1 and 5")
	ErrForbidden         = errors.New("no rights for this review")
)

type Repository interface {
	GetByID(id int) (Review, error)
	GetByOrder(orderID int) (Review, error)
	ListBySupplier(supplierID int) ([]Review, error)
	Create(rev Review) (Review, error)
	Update(id int, rating int, shortReview string, description string) (Review, error)
	Delete(id int) error
	// AverageForSupplier returns the mean rating rounded to one
	// decimal, 0 when the supplier has no reviews.
	AverageForSupplier(supplierID int) (float64, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews []Review
	nextID  int
}

func NewInMemoryRepository(seed []Review) *InMemoryRepository {
	repo := &InMemoryRepository{
		reviews: make([]Review, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, rev := range seed {
		repo.reviews = append(repo.reviews, rev)
		if rev.ID > maxID {
			maxID = rev.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByID(id int) (Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rev := range r.reviews {
		if rev.ID == id {
			return rev, nil
		}
	}

	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) GetByOrder(orderID int) (Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rev := range r.reviews {
		if rev.OrderID == orderID {
			return rev, nil
		}
	}

	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) ListBySupplier(supplierID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Review, 0)
	for _, rev := range r.reviews {
		if rev.SupplierID == supplierID {
			out = append(out, rev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (r *InMemoryRepository) Create(rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rev.ID == 0 {
		rev.ID = r.nextID
		r.nextID++
	}

	r.reviews = append(r.reviews, rev)
	return rev, nil
}

func (r *InMemoryRepository) Update(id int, rating int, shortReview string, description string) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rev := range r.reviews {
		if rev.ID == id {
			rev.Rating = rating
			rev.ShortReview = shortReview
			rev.Description = description
			r.reviews[i] = rev
			return rev, nil
		}
	}

	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rev := range r.reviews {
		if rev.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) AverageForSupplier(supplierID int) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum, count := 0, 0
	for _, rev := range r.reviews {
		if rev.SupplierID == supplierID {
			sum += rev.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}

	avg := float64(sum) / float64(count)
	return math.Round(avg*10) / 10, nil
}
