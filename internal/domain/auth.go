package domain

import "time"

// PrincipalType differentiates customer vs employee tokens. Every
// issued token carries exactly one of these values in its type claim.
type PrincipalType string

const (
	PrincipalTypeCustomer PrincipalType = "customer"
	PrincipalTypeEmployee PrincipalType = "employee"
)

// Token represents issued session token metadata. Tokens are stateless
// and never persisted; there is no revocation list.
type Token struct {
	SubjectID string
	Type      PrincipalType
	Role      *EmployeeRole
	ExpiresAt time.Time
	IssuedAt  time.Time
}
