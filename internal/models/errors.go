package models

import "errors"

var ErrNotFound = errors.New("requested resource not found")
var ErrForbidden = errors.New("user does not have permission to access this resource")
var ErrConflict = errors.New("resource conflict, item already exists")

// ErrInvalidRole indicates a role value outside the recognized set.
var ErrInvalidRole = errors.New("invalid role value")

// ErrInvalidStatus indicates a delivery or rider status value outside the
// recognized set.
var ErrInvalidStatus = errors.New("invalid status value")

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Message string `json:"message"`
}
