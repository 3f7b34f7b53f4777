package user

type User struct {
	ID          int     `json:"id"`
	Email       string  `json:"email"`
	Password    string  `json:"password,omitempty"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Phone       string  `json:"phone"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}
