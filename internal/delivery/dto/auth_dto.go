package dto

// Request DTOs

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=255"`
	Password string  `json:"password" validate:"required,min=4"`
	Role     string  `json:"role" validate:"required,oneof=doctor paciente"`
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"required"`
	Clinic   *string `json:"clinic" validate:"omitempty"` // doctors only, dropped for patients
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=doctor paciente"`
}

// Response DTOs

// UserResponse is the public shape of a user. The password never leaves
// the store.
type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Role     string  `json:"role"`
	Clinic   *string `json:"clinic,omitempty"`
}
