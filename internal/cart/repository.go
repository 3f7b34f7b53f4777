package cart

import (
	"errors"
	"sync"
)

var (
	ErrQuantity          = errors.New("quantity must be at least 1")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrItemNotFound      = errors.New("cart item not found")
	ErrSupplierConflict  = errors.New("cart may only contain items from one supplier")
)

type Repository interface {
	// GetOrCreate returns the user's cart with its items, creating an
	// empty cart row on first access.
	GetOrCreate(userID int) (Cart, error)
	// AddItem inserts a cart item or increments the quantity of an
	// existing (cartId, equipmentId) row.
	AddItem(cartID int, eq ItemEquipment, quantity int) (CartItem, error)
	UpdateItemQuantity(cartID int, equipmentID int, quantity int) (CartItem, error)
	RemoveItem(cartID int, equipmentID int) error
	Clear(cartID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu         sync.Mutex
	carts      []Cart
	nextCartID int
	nextItemID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextCartID: 1, nextItemID: 1}
}

func (r *InMemoryRepository) GetOrCreate(userID int) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		if c.UserID == userID {
			return copyCart(c), nil
		}
	}

	c := Cart{ID: r.nextCartID, UserID: userID, Items: []CartItem{}}
	r.nextCartID++
	r.carts = append(r.carts, c)
	return copyCart(c), nil
}

func (r *InMemoryRepository) AddItem(cartID int, eq ItemEquipment, quantity int) (CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ci, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		for ii, item := range c.Items {
			if item.EquipmentID == eq.ID {
				item.Quantity += quantity
				r.carts[ci].Items[ii] = item
				return item, nil
			}
		}
		item := CartItem{ID: r.nextItemID, EquipmentID: eq.ID, Quantity: quantity, Equipment: eq}
		r.nextItemID++
		r.carts[ci].Items = append(r.carts[ci].Items, item)
		return item, nil
	}

	return CartItem{}, ErrItemNotFound
}

func (r *InMemoryRepository) UpdateItemQuantity(cartID int, equipmentID int, quantity int) (CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ci, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		for ii, item := range c.Items {
			if item.EquipmentID == equipmentID {
				item.Quantity = quantity
				r.carts[ci].Items[ii] = item
				return item, nil
			}
		}
	}

	return CartItem{}, ErrItemNotFound
}

func (r *InMemoryRepository) RemoveItem(cartID int, equipmentID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ci, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		for ii, item := range c.Items {
			if item.EquipmentID == equipmentID {
				r.carts[ci].Items = append(c.Items[:ii], c.Items[ii+1:]...)
				return nil
			}
		}
	}

	return ErrItemNotFound
}

func (r *InMemoryRepository) Clear(cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ci, c := range r.carts {
		if c.ID == cartID {
			r.carts[ci].Items = []CartItem{}
			return nil
		}
	}

	return nil
}

func copyCart(c Cart) Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
