package models

import "time"

// Payment status values for a parcel.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Delivery status values. The vocabulary mirrors the rider lifecycle so a
// parcel's progress and its assigned rider's state read the same way.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusActive    = "active"
	DeliveryStatusCancelled = "cancelled"
)

// Parcel represents a delivery booking.
type Parcel struct {
	ID              string    `json:"id"`
	TrackingID      string    `json:"tracking_id"`
	Title           string    `json:"title"`
	ParcelType      string    `json:"parcel_type"`
	WeightKg        float64   `json:"weight_kg"`
	SenderName      string    `json:"sender_name"`
	SenderRegion    string    `json:"sender_region"`
	SenderAddress   string    `json:"sender_address"`
	ReceiverName    string    `json:"receiver_name"`
	ReceiverRegion  string    `json:"receiver_region"`
	ReceiverAddress string    `json:"receiver_address"`
	Cost            float64   `json:"cost"`
	CreatedBy       string    `json:"created_by"`
	PaymentStatus   string    `json:"payment_status"`
	DeliveryStatus  string    `json:"delivery_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateParcelRequest carries the booking details for a new parcel. The
// server assigns the id, tracking id, statuses and timestamp.
type CreateParcelRequest struct {
	Title           string  `json:"title" validate:"required"`
	ParcelType      string  `json:"parcel_type" validate:"required,oneof=document non-document"`
	WeightKg        float64 `json:"weight_kg" validate:"gte=0"`
	SenderName      string  `json:"sender_name" validate:"required"`
	SenderRegion    string  `json:"sender_region" validate:"required"`
	SenderAddress   string  `json:"sender_address" validate:"required"`
	ReceiverName    string  `json:"receiver_name" validate:"required"`
	ReceiverRegion  string  `json:"receiver_region" validate:"required"`
	ReceiverAddress string  `json:"receiver_address" validate:"required"`
	Cost            float64 `json:"cost" validate:"gte=0"`
	CreatedBy       string  `json:"created_by" validate:"required,email"`
}

// ParcelFilter holds the optional, combinable equality filters for the
// parcel listing.
type ParcelFilter struct {
	CreatedBy      string
	PaymentStatus  string
	DeliveryStatus string
}

// DeleteResult reports how many rows a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
