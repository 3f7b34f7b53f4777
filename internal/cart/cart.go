package cart

// Cart is the per-user staging area for a single supplier's equipment.
type Cart struct {
	ID     int        `json:"id"`
	UserID int        `json:"userId"`
	Items  []CartItem `json:"items"`
}

// CartItem pairs a piece of equipment with a positive quantity.
type CartItem struct {
	ID          int           `json:"id"`
	EquipmentID int           `json:"equipmentId"`
	Quantity    int           `json:"quantity"`
	Equipment   ItemEquipment `json:"equipment"`
}

// ItemEquipment is the equipment summary carried on cart items. Price is
// zero when the underlying equipment row has been deleted.
type ItemEquipment struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Price      int     `json:"price"`
	SupplierID int     `json:"supplierId"`
	Photo      *string `json:"photo,omitempty"`
}

// Total sums price times quantity over the cart's items.
func (c Cart) Total() int {
	total := 0
	for _, item := range c.Items {
		total += item.Equipment.Price * item.Quantity
	}
	return total
}

// SupplierID returns the supplier the cart is bound to, or 0 for an
// empty cart.
func (c Cart) SupplierID() int {
	if len(c.Items) == 0 {
		return 0
	}
	return c.Items[0].Equipment.SupplierID
}
