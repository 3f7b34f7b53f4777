package order

// Order statuses. A user may only cancel, and only while the order is
// still under review; a supplier may set any status on orders addressed
// to them.
const (
	StatusUnderReview = "under review"
	StatusInProgress  = "in progress"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
)

// ValidStatus reports whether s is one of the allowed order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusUnderReview, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order is the immutable snapshot created from a cart at checkout.
// TotalCost is fixed at checkout time; item lines carry no price of
// their own and join the current equipment price when listed.
type Order struct {
	ID              int     `json:"id"`
	UserID          int     `json:"userId"`
	SupplierID      int     `json:"supplierId"`
	DeliveryAddress string  `json:"deliveryAddress"`
	TotalCost       int     `json:"totalCost"`
	Status          string  `json:"status"`
	CompletionTime  *string `json:"completionTime,omitempty"`
	OrderName       string  `json:"orderName"`
	Description     *string `json:"description,omitempty"`
	DateOfOrdering  string  `json:"dateOfOrdering"`

	Items    []OrderItem   `json:"items"`
	Review   *ReviewInfo   `json:"review,omitempty"`
	Customer *CustomerInfo `json:"customer,omitempty"`
}

type OrderItem struct {
	ID          int           `json:"id"`
	EquipmentID int           `json:"equipmentId"`
	Quantity    int           `json:"quantity"`
	Equipment   ItemEquipment `json:"equipment"`
}

// ItemEquipment is the current equipment state joined onto order items.
type ItemEquipment struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price int     `json:"price"`
	Photo *string `json:"photo,omitempty"`
}

// ReviewInfo is the review attached to a completed order, if any.
type ReviewInfo struct {
	ID          int    `json:"id"`
	Rating      int    `json:"rating"`
	ShortReview string `json:"shortReview"`
	Description string `json:"description"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

// CustomerInfo identifies the ordering user in supplier listings.
type CustomerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}
