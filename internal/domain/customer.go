package domain

import "time"

// Customer is the domain model for bank customers who authenticate
// against this service.
type Customer struct {
	ID            string
	FullName      string
	NationalID    string
	Username      string
	AccountNumber string
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PublicProfile returns the fields safe to expose in responses.
// The password hash never leaves the domain layer.
func (c *Customer) PublicProfile() map[string]any {
	return map[string]any{
		"id":            c.ID,
		"fullName":      c.FullName,
		"username":      c.Username,
		"accountNumber": c.AccountNumber,
	}
}
