package model

import "time"

// Event is an upcoming parish activity shown on the events screen.
type Event struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description" bson:"description" validate:"omitempty,max=2000"`
	Location    string    `json:"location" bson:"location" validate:"required"`
	StartTime   time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// Donation is a single contribution recorded against a user.
type Donation struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID    string    `json:"user_id" bson:"user_id" validate:"required"`
	Amount    float64   `json:"amount" bson:"amount" validate:"required,gt=0"`
	Intention string    `json:"intention,omitempty" bson:"intention,omitempty" validate:"omitempty,max=500"`
	Method    string    `json:"method" bson:"method" validate:"required,oneof=cash gcash bank_transfer"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// Volunteer is a registration for parish activities.
type Volunteer struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID        string    `json:"user_id" bson:"user_id" validate:"required"`
	FullName      string    `json:"full_name" bson:"full_name" validate:"required,min=2,max=100"`
	ContactNumber string    `json:"contact_number" bson:"contact_number" validate:"required,ph_mobile"`
	Ministry      string    `json:"ministry" bson:"ministry" validate:"required,min=2,max=100"`
	Availability  string    `json:"availability,omitempty" bson:"availability,omitempty" validate:"omitempty,max=500"`
	CreatedAt     time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
