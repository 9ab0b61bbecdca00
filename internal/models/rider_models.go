package models

import "time"

// Rider lifecycle states. Applications start pending; an admin moves them
// to active or cancelled.
const (
	RiderStatusPending   = "pending"
	RiderStatusActive    = "active"
	RiderStatusCancelled = "cancelled"
)

// Rider is a delivery-personnel application record.
type Rider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Region    string    `json:"region"`
	District  string    `json:"district"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRiderRequest is a rider application. Status is forced to pending
// regardless of input.
type CreateRiderRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Region   string `json:"region" validate:"required"`
	District string `json:"district" validate:"required"`
}

// UpdateRiderStatusRequest transitions a rider application.
type UpdateRiderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateRiderStatusResponse reports the outcome of a status transition.
type UpdateRiderStatusResponse struct {
	Success       bool  `json:"success"`
	ModifiedCount int64 `json:"modifiedCount"`
}
