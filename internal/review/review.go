package review

// Review is a user's post-completion rating of a supplier, tied to one
// order. The supplier is always taken from the order, never from the
// client.
type Review struct {
	ID          int    `json:"id"`
	UserID      int    `json:"userId"`
	OrderID     int    `json:"orderId"`
	SupplierID  int    `json:"supplierId"`
	Rating      int    `json:"rating"`
	ShortReview string `json:"shortReview"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt,omitempty"`

	Reviewer *ReviewerInfo `json:"reviewer,omitempty"`
}

// ReviewerInfo names the review's author in listings.
type ReviewerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
