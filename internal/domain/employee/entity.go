package employee

import "time"

type Employee struct {
	ID         string
	UserID     string
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	Department *string
	Position   *string
	HireDate   *time.Time
	AvatarURL  *string
}

// FullName joins first and last name
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
