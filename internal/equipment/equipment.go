package equipment

// Equipment is a catalog item owned by exactly one supplier.
// Price is stored in the smallest currency unit.
type Equipment struct {
	ID           int     `json:"id"`
	SupplierID   int     `json:"supplierId"`
	Name         string  `json:"name"`
	Model        string  `json:"model"`
	Description  string  `json:"description"`
	Price        int     `json:"price"`
	Photo        *string `json:"photo,omitempty"`
	SerialNumber string  `json:"serialNumber"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`

	Supplier *SupplierInfo `json:"supplier,omitempty"`
}

// SupplierInfo is the supplier summary embedded in equipment responses.
type SupplierInfo struct {
	ID          int     `json:"id"`
	CompanyName string  `json:"companyName"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Logo        *string `json:"logo,omitempty"`
}
