package supplier

type Supplier struct {
	ID                 int     `json:"id"`
	CompanyName        string  `json:"companyName"`
	ContactPerson      string  `json:"contactPerson"`
	RegistrationNumber string  `json:"registrationNumber"`
	Phone              string  `json:"phone"`
	Description        *string `json:"description,omitempty"`
	Email              string  `json:"email"`
	Password           string  `json:"password,omitempty"`
	Address            string  `json:"address"`
	Logo               *string `json:"logo,omitempty"`
	CreatedAt          string  `json:"createdAt,omitempty"`
	UpdatedAt          string  `json:"updatedAt,omitempty"`

	// aggregates filled by the list query
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// ListFilter narrows the supplier listing. Zero values mean "no filter".
type ListFilter struct {
	CompanyName   string
	Address       string
	AverageRating float64
	Limit         int
	Offset        int
}
