package supplier

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNotFound           = errors.New("supplier not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

type Repository interface {
	GetByID(id int) (Supplier, error)
	GetByEmail(email string) (Supplier, error)
	List(filter ListFilter) ([]Supplier, int, error)
	Create(s Supplier) (Supplier, error)
	Update(id int, s Supplier) (Supplier, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios. Ratings per
// supplier are seeded directly since reviews live in their own package.
type InMemoryRepository struct {
	mu        sync.RWMutex
	suppliers []Supplier
	ratings   map[int][]int
	nextID    int
}

func NewInMemoryRepository(seed []Supplier) *InMemoryRepository {
	repo := &InMemoryRepository{
		suppliers: make([]Supplier, 0, len(seed)),
		ratings:   make(map[int][]int),
		nextID:    1,
	}

	maxID := 0
	for _, s := range seed {
		repo.suppliers = append(repo.suppliers, s)
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

// SeedRatings attaches review ratings to a supplier for aggregate tests.
func (r *InMemoryRepository) SeedRatings(supplierID int, ratings []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratings[supplierID] = ratings
}

func (r *InMemoryRepository) GetByID(id int) (Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.suppliers {
		if s.ID == id {
			return r.withAggregates(s), nil
		}
	}

	return Supplier{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.suppliers {
		if s.Email == email {
			return s, nil
		}
	}

	return Supplier{}, ErrNotFound
}

func (r *InMemoryRepository) List(filter ListFilter) ([]Supplier, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		if filter.CompanyName != "" && !strings.Contains(strings.ToLower(s.CompanyName), strings.ToLower(filter.CompanyName)) {
			continue
		}
		if filter.Address != "" && !strings.Contains(strings.ToLower(s.Address), strings.ToLower(filter.Address)) {
			continue
		}
		s = r.withAggregates(s)
		if filter.AverageRating > 0 && s.AverageRating < filter.AverageRating {
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })

	total := len(out)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			out = []Supplier{}
		} else {
			out = out[filter.Offset:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}

	return out, total, nil
}

func (r *InMemoryRepository) Create(s Supplier) (Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == 0 {
		s.ID = r.nextID
		r.nextID++
	}

	r.suppliers = append(r.suppliers, s)
	return s, nil
}

func (r *InMemoryRepository) Update(id int, upd Supplier) (Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.suppliers {
		if s.ID == id {
			s.CompanyName = upd.CompanyName
			s.ContactPerson = upd.ContactPerson
			s.RegistrationNumber = upd.RegistrationNumber
			s.Phone = upd.Phone
			s.Description = upd.Description
			s.Address = upd.Address
			s.Logo = upd.Logo
			if upd.Email != "" {
				s.Email = upd.Email
			}
			if upd.Password != "" {
				s.Password = upd.Password
			}
			if upd.UpdatedAt != "" {
				s.UpdatedAt = upd.UpdatedAt
			}
			r.suppliers[i] = s
			return s, nil
		}
	}

	return Supplier{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.suppliers {
		if s.ID == id {
			r.suppliers = append(r.suppliers[:i], r.suppliers[i+1:]...)
			delete(r.ratings, id)
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) withAggregates(s Supplier) Supplier {
	ratings := r.ratings[s.ID]
	s.ReviewCount = len(ratings)
	if len(ratings) == 0 {
		s.AverageRating = 0
		return s
	}
	sum := 0
	for _, v := range ratings {
		sum += v
	}
	avg := float64(sum) / float64(len(ratings))
	s.AverageRating = math.Round(avg*10) / 10
	return s
}
