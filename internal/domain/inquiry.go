// Package domain contains the core data types for the Rupal Adventures backend.
// This package has no dependencies on the store, transport or framework
// packages and is imported by every other internal package.
package domain

import "time"

// Inquiry is a contact or interest submission from the public site.
// The store assigns ID and CreatedAt; both are immutable afterwards.
// Optional fields are nil when absent, never empty strings.
type Inquiry struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	City         string    `json:"city"`
	Province     *string   `json:"province"`
	Organization *string   `json:"organization"`
	Country      string    `json:"country"`
	Subject      *string   `json:"subject"`
	Message      *string   `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewInquiry is the input to an inquiry insert: an Inquiry without the
// store-assigned fields.
type NewInquiry struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	City         string  `json:"city"`
	Province     *string `json:"province"`
	Organization *string `json:"organization"`
	Country      string  `json:"country"`
	Subject      *string `json:"subject"`
	Message      *string `json:"message"`
}

// Normalize trims every field and turns blank optional fields into nil.
func (n NewInquiry) Normalize() NewInquiry {
	n.FirstName = trim(n.FirstName)
	n.LastName = trim(n.LastName)
	n.Phone = trim(n.Phone)
	n.Email = trim(n.Email)
	n.City = trim(n.City)
	n.Country = trim(n.Country)
	n.Province = Optional(n.Province)
	n.Organization = Optional(n.Organization)
	n.Subject = Optional(n.Subject)
	n.Message = Optional(n.Message)
	return n
}

// InquiryPatch is a partial update. Nil fields are left untouched.
// Setting an optional field to a blank string clears it to null.
type InquiryPatch struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	City         *string `json:"city"`
	Province     *string `json:"province"`
	Organization *string `json:"organization"`
	Country      *string `json:"country"`
	Subject      *string `json:"subject"`
	Message      *string `json:"message"`
}

// Empty reports whether the patch supplies no field at all.
func (p InquiryPatch) Empty() bool {
	return p == InquiryPatch{}
}

// Apply returns i with every supplied field of p written over it.
// Used by in-memory stores; SQL stores build the equivalent UPDATE.
func (p InquiryPatch) Apply(i Inquiry) Inquiry {
	setString(&i.FirstName, p.FirstName)
	setString(&i.LastName, p.LastName)
	setString(&i.Phone, p.Phone)
	setString(&i.Email, p.Email)
	setString(&i.City, p.City)
	setString(&i.Country, p.Country)
	setOptional(&i.Province, p.Province)
	setOptional(&i.Organization, p.Organization)
	setOptional(&i.Subject, p.Subject)
	setOptional(&i.Message, p.Message)
	return i
}
