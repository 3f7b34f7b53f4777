package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/ame-market/equipment-market-backend/internal/cart"
)

// ServiceInterface is what other packages need from the order service.
type ServiceInterface interface {
	GetByID(id int) (Order, error)
}

// Service converts carts into orders and walks them through the status
// lifecycle.
type Service struct {
	repo  Repository
	carts cart.ServiceInterface
}

func NewService(repo Repository, carts cart.ServiceInterface) *Service {
	return &Service{repo: repo, carts: carts}
}

// Checkout snapshots the user's cart into an order. The insert and the
// cart wipe happen inside one repository transaction, so either the
// order with its items exists and the cart is empty, or nothing changed.
func (s *Service) Checkout(userID int, deliveryAddress string, description string) (Order, error) {
	crt, err := s.carts.Get(userID)
	if err != nil {
		return Order{}, err
	}

	if len(crt.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	// re-checked at commit time even though the cart service enforces it
	supplierID := crt.Items[0].Equipment.SupplierID
	for _, item := range crt.Items {
		if item.Equipment.SupplierID != supplierID {
			return Order{}, ErrMultipleSuppliers
		}
	}

	names := make([]string, 0, len(crt.Items))
	items := make([]OrderItem, 0, len(crt.Items))
	for _, item := range crt.Items {
		names = append(names, fmt.Sprintf("%s x %d", item.Equipment.Name, item.Quantity))
		items = append(items, OrderItem{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
			Equipment: ItemEquipment{
				ID:    item.Equipment.ID,
				Name:  item.Equipment.Name,
				Price: item.Equipment.Price,
				Photo: item.Equipment.Photo,
			},
		})
	}

	ord := Order{
		UserID:          userID,
		SupplierID:      supplierID,
		DeliveryAddress: deliveryAddress,
		TotalCost:       crt.Total(),
		Status:          StatusUnderReview,
		OrderName:       strings.Join(names, "; "),
		DateOfOrdering:  time.Now().UTC().Format(time.RFC3339),
		Items:           items,
	}
	if description != "" {
		ord.Description = &description
	}

	return s.repo.CreateFromCart(ord, crt.ID)
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListForUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListForSupplier(supplierID int) ([]Order, error) {
	return s.repo.ListBySupplier(supplierID)
}

// SetStatusAsUser lets the order's owner cancel it while it is still
// under review. Any other user-initiated transition is refused.
func (s *Service) SetStatusAsUser(orderID int, userID int, status string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrForbidden
	}
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}
	if status != StatusCancelled {
		return Order{}, ErrForbidden
	}
	if ord.Status != StatusUnderReview {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(orderID, status)
}

// SetStatusAsSupplier lets the addressed supplier set any allowed status.
// Only set membership is checked, not the predecessor state.
func (s *Service) SetStatusAsSupplier(orderID int, supplierID int, status string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.SupplierID != supplierID {
		return Order{}, ErrForbidden
	}
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(orderID, status)
}

func (s *Service) SetCompletionTime(orderID int, supplierID int, value string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.SupplierID != supplierID {
		return Order{}, ErrForbidden
	}
	return s.repo.UpdateCompletionTime(orderID, value)
}

// Delete removes the order and its items; only the ordering user may do it.
func (s *Service) Delete(orderID int, userID int) error {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	if ord.UserID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(orderID)
}
