package domain

import "time"

// Payment records a transfer initiated by an authenticated customer.
// The payments namespace is intentionally thin; settlement happens in
// an external system.
type Payment struct {
	ID                string
	CustomerID        string
	FromAccountNumber string
	ToAccountNumber   string
	AmountCents       int64
	Reference         string
	CreatedAt         time.Time
}
