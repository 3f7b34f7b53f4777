package review

import (
	"time"

	"github.com/ame-market/equipment-market-backend/internal/order"
)

// ServiceInterface is what the supplier detail endpoint needs from the
// review service.
type ServiceInterface interface {
	ListBySupplier(supplierID int) ([]Review, error)
	AverageRating(supplierID int) (float64, error)
}

// Service guards the one-review-per-completed-order rule.
type Service struct {
	repo   Repository
	orders order.ServiceInterface
}

func NewService(repo Repository, orders order.ServiceInterface) *Service {
	return &Service{repo: repo, orders: orders}
}

func (s *Service) Create(userID int, orderID int, rating int, shortReview string, description string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrRating
	}

	ord, err := s.orders.GetByID(orderID)
	if err != nil {
		if err == order.ErrNotFound {
			return Review{}, ErrOrderNotFound
		}
		return Review{}, err
	}

	if ord.Status != order.StatusCompleted {
		return Review{}, ErrOrderNotCompleted
	}

	if _, err := s.repo.GetByOrder(orderID); err == nil {
		return Review{}, ErrAlreadyReviewed
	} else if err != ErrNotFound {
		return Review{}, err
	}

	return s.repo.Create(Review{
		UserID:      userID,
		OrderID:     orderID,
		SupplierID:  ord.SupplierID,
		Rating:      rating,
		ShortReview: shortReview,
		Description: description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Service) GetByID(id int) (Review, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListBySupplier(supplierID int) ([]Review, error) {
	return s.repo.ListBySupplier(supplierID)
}

func (s *Service) AverageRating(supplierID int) (float64, error) {
	return s.repo.AverageForSupplier(supplierID)
}

// Update is restricted to the review's author.
func (s *Service) Update(id int, userID int, rating int, shortReview string, description string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrRating
	}

	rev, err := s.repo.GetByID(id)
	if err != nil {
		return Review{}, err
	}
	if rev.UserID != userID {
		return Review{}, ErrForbidden
	}

	return s.repo.Update(id, rating, shortReview, description)
}

// Delete is restricted to the review's author.
func (s *Service) Delete(id int, userID int) error {
	rev, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rev.UserID != userID {
		return ErrForbidden
	}

	return s.repo.Delete(id)
}
