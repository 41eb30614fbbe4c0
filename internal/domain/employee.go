package domain

import (
	"fmt"
	"strings"
	"time"
)

// EmployeeRole enumerates internal operator roles.
type EmployeeRole string

const (
	EmployeeRoleTeller  EmployeeRole = "TELLER"
	EmployeeRoleManager EmployeeRole = "MANAGER"
	EmployeeRoleAdmin   EmployeeRole = "ADMIN"
)

// ParseEmployeeRole converts external input into a known role. Matching is
// case-insensitive; unknown values return an error.
func ParseEmployeeRole(value string) (EmployeeRole, error) {
	switch EmployeeRole(strings.ToUpper(value)) {
	case EmployeeRoleTeller:
		return EmployeeRoleTeller, nil
	case EmployeeRoleManager:
		return EmployeeRoleManager, nil
	case EmployeeRoleAdmin:
		return EmployeeRoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown employee role %q", value)
	}
}

// Employee models a bank employee. This service only reads employee
// records at login; provisioning happens through cmd/seed.
type Employee struct {
	ID           string
	EmployeeID   string
	FullName     string
	Role         EmployeeRole
	Department   string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
