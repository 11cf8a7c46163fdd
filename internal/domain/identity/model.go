package identity

import (
	"time"

	"github.com/google/uuid"
)

// Address is stored as a jsonb document on the user row.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Prescription is one entry in the user's prescription history, stored
// as part of a jsonb array.
type Prescription struct {
	Medication string     `json:"medication"`
	Dosage     string     `json:"dosage,omitempty"`
	Frequency  string     `json:"frequency,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
}

// User maps to the users table. The password hash and reset-token fields
// never leave the API.
type User struct {
	ID                uuid.UUID      `db:"id" json:"id"`
	FirstName         string         `db:"first_name" json:"firstName"`
	LastName          string         `db:"last_name" json:"lastName"`
	Email             string         `db:"email" json:"email"`
	PasswordHash      string         `db:"password_hash" json:"-"`
	Phone             string         `db:"phone" json:"phone,omitempty"`
	Address           *Address       `db:"address" json:"address,omitempty"`
	Role              string         `db:"role" json:"role"`
	IsVerified        bool           `db:"is_verified" json:"isVerified"`
	Avatar            string         `db:"avatar" json:"avatar,omitempty"`
	DateOfBirth       *time.Time     `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	MedicalConditions []string       `db:"medical_conditions" json:"medicalConditions,omitempty"`
	Allergies         []string       `db:"allergies" json:"allergies,omitempty"`
	Prescriptions     []Prescription `db:"prescriptions" json:"prescriptions,omitempty"`
	ResetTokenHash    string         `db:"reset_token_hash" json:"-"`
	ResetTokenExpires *time.Time     `db:"reset_token_expires" json:"-"`
	CreatedAt         time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updatedAt"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
