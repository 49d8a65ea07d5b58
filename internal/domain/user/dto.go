package user

import (
	"time"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
}

// NewUserResponse maps a user without profile names
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
