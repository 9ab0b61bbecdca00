package models

import "time"

// Recognized user roles. RoleRider is never assigned through the role
// endpoint; it is set as a side effect of rider activation.
const (
	RoleUser  = "user"
	RoleRider = "rider"
	RoleAdmin = "admin"
)

// User represents an account created on first sign-in.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest registers (or re-registers) a signed-in identity.
type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateUserResponse is returned by the create-or-find user operation.
// Inserted is false when the email was already registered.
type CreateUserResponse struct {
	Message  string `json:"message"`
	Inserted bool   `json:"inserted"`
	User     *User  `json:"user,omitempty"`
}

// UpdateRoleRequest changes a user's role. Only admin and user are
// accepted here; the rider role is reachable solely through activation.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// RoleResponse reports a user's effective role.
type RoleResponse struct {
	Role string `json:"role"`
}
