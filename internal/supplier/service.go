package supplier

import "golang.org/x/crypto/bcrypt"

// ServiceInterface allows other handlers to depend on supplier lookups
// without binding to the concrete service.
type ServiceInterface interface {
	GetByID(id int) (Supplier, error)
	List(filter ListFilter) ([]Supplier, int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Supplier, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(filter ListFilter) ([]Supplier, int, error) {
	return s.repo.List(filter)
}

func (s *Service) Register(sup Supplier) (Supplier, error) {
	if _, err := s.repo.GetByEmail(sup.Email); err == nil {
		return Supplier{}, ErrEmailExists
	} else if err != ErrNotFound {
		return Supplier{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(sup.Password), bcrypt.DefaultCost)
	if err != nil {
		return Supplier{}, err
	}

	sup.Password = string(hashed)
	return s.repo.Create(sup)
}

func (s *Service) Authenticate(email, password string) (Supplier, error) {
	sup, err := s.repo.GetByEmail(email)
	if err != nil {
		return Supplier{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(sup.Password), []byte(password)) != nil {
		return Supplier{}, ErrInvalidCredentials
	}

	return sup, nil
}

func (s *Service) Update(id int, sup Supplier) (Supplier, error) {
	if sup.Password != "" && !looksLikeBcrypt(sup.Password) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(sup.Password), bcrypt.DefaultCost)
		if err != nil {
			return Supplier{}, err
		}
		sup.Password = string(hashed)
	}
	return s.repo.Update(id, sup)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func looksLikeBcrypt(value string) bool {
	return len(value) > 4 && value[0:2] == "$2"
}
