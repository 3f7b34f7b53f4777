package equipment

import "errors"

var (
	ErrForbidden = errors.New("equipment belongs to another supplier")
	ErrInvalid   = errors.New("invalid equipment payload")
)

// ServiceInterface is what other handlers need from the equipment service.
type ServiceInterface interface {
	GetByID(id int) (Equipment, error)
	ListBySupplier(supplierID int) ([]Equipment, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Equipment, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List() ([]Equipment, error) {
	return s.repo.List()
}

func (s *Service) ListBySupplier(supplierID int) ([]Equipment, error) {
	return s.repo.ListBySupplier(supplierID)
}

func (s *Service) Create(supplierID int, e Equipment) (Equipment, error) {
	if e.Name == "" || e.Price < 0 {
		return Equipment{}, ErrInvalid
	}
	e.SupplierID = supplierID
	return s.repo.Create(e)
}

// Update rejects the call when the equipment is owned by a different
// supplier than the requester.
func (s *Service) Update(id int, supplierID int, e Equipment) (Equipment, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Equipment{}, err
	}
	if existing.SupplierID != supplierID {
		return Equipment{}, ErrForbidden
	}
	if e.Price < 0 {
		return Equipment{}, ErrInvalid
	}
	return s.repo.Update(id, e)
}

func (s *Service) Delete(id int, supplierID int) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.SupplierID != supplierID {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}
