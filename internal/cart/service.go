package cart

import (
	"github.com/ame-market/equipment-market-backend/internal/equipment"
)

// ServiceInterface is what the order checkout needs from the cart.
type ServiceInterface interface {
	Get(userID int) (Cart, error)
}

// Service enforces the cart invariants: positive quantities and a single
// supplier per cart.
type Service struct {
	repo      Repository
	equipment equipment.ServiceInterface
}

func NewService(repo Repository, eq equipment.ServiceInterface) *Service {
	return &Service{repo: repo, equipment: eq}
}

func (s *Service) Get(userID int) (Cart, error) {
	return s.repo.GetOrCreate(userID)
}

func (s *Service) AddItem(userID int, equipmentID int, quantity int) (CartItem, error) {
	if quantity < 1 {
		return CartItem{}, ErrQuantity
	}

	eq, err := s.equipment.GetByID(equipmentID)
	if err != nil {
		if err == equipment.ErrNotFound {
			return CartItem{}, ErrEquipmentNotFound
		}
		return CartItem{}, err
	}

	crt, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return CartItem{}, err
	}

	if supplierID := crt.SupplierID(); supplierID != 0 && supplierID != eq.SupplierID {
		return CartItem{}, ErrSupplierConflict
	}

	return s.repo.AddItem(crt.ID, ItemEquipment{
		ID:         eq.ID,
		Name:       eq.Name,
		Price:      eq.Price,
		SupplierID: eq.SupplierID,
		Photo:      eq.Photo,
	}, quantity)
}

func (s *Service) UpdateQuantity(userID int, equipmentID int, quantity int) (CartItem, error) {
	if quantity < 1 {
		return CartItem{}, ErrQuantity
	}

	crt, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return CartItem{}, err
	}

	return s.repo.UpdateItemQuantity(crt.ID, equipmentID, quantity)
}

func (s *Service) RemoveItem(userID int, equipmentID int) error {
	crt, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return err
	}

	return s.repo.RemoveItem(crt.ID, equipmentID)
}

// Clear empties the cart's items; the cart row itself persists.
func (s *Service) Clear(userID int) error {
	crt, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return err
	}

	return s.repo.Clear(crt.ID)
}

func (s *Service) Total(userID int) (int, error) {
	crt, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return 0, err
	}

	return crt.Total(), nil
}
