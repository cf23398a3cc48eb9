package model

import "time"

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Booking is the generic reservation record. Sacrament-specific data
// lives in its own collection and is referenced by SpecificDocumentID.
type Booking struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID         string    `json:"user_id" bson:"user_id" validate:"required"`
	Sacrament      Sacrament `json:"sacrament" bson:"sacrament" validate:"required"`
	Date           time.Time `json:"date" bson:"date" validate:"required"`
	Time           string    `json:"time" bson:"time" validate:"required"`
	Pax            int       `json:"pax" bson:"pax" validate:"required,min=1"`
	ContactNumber  string    `json:"contact_number" bson:"contact_number"`
	CurrentAddress string    `json:"current_address" bson:"current_address"`

	Status             string `json:"status" bson:"status" validate:"omitempty,oneof=pending approved rejected cancelled"`
	TransactionID      string `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	SpecificDocumentID string `json:"specific_document_id,omitempty" bson:"specific_document_id,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// BookingRequest is what the submit endpoint receives: the candidate
// booking plus at most one sacrament-specific document. The UI owns
// form mutation; the core only ever sees the finished value.
type BookingRequest struct {
	Booking Booking          `json:"booking"`
	Baptism *BaptismDocument `json:"baptism,omitempty"`
	Wedding *WeddingDocument `json:"wedding,omitempty"`
	Burial  *BurialDocument  `json:"burial,omitempty"`
}

// UserProfile is the slice of the hosted auth platform's profile the
// booking flow cares about: a saved mobile number used as a pre-fill
// fallback when a form arrives without one.
type UserProfile struct {
	ID     string `json:"id" bson:"_id,omitempty"`
	Email  string `json:"email" bson:"email"`
	Mobile string `json:"mobile" bson:"mobile"`
}
