package validation

import (
	"regexp"
	"strings"
)

// MinPasswordLength is deliberately weak; this mirrors the test/dev
// password policy the service is configured with.
const MinPasswordLength = 4

// Field patterns are process-wide, initialized once and never mutated.
var (
	fullNamePattern      = regexp.MustCompile(`^[a-zA-Z ]{2,50}$`)
	nationalIDPattern    = regexp.MustCompile(`^\d{13}$`)
	usernamePattern      = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	accountNumberPattern = regexp.MustCompile(`^\d{10,12}$`)
)

// Sanitize trims surrounding whitespace and strips angle brackets.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	return strings.ReplaceAll(s, ">", "")
}

// ValidFullName reports whether s is 2-50 letters and spaces.
func ValidFullName(s string) bool {
	return fullNamePattern.MatchString(s)
}

// ValidNationalID reports whether s is exactly 13 digits.
func ValidNationalID(s string) bool {
	return nationalIDPattern.MatchString(s)
}

// ValidUsername reports whether s is 3-20 alphanumerics or underscores.
func ValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// ValidAccountNumber reports whether s is 10-12 digits.
func ValidAccountNumber(s string) bool {
	return accountNumberPattern.MatchString(s)
}

// SignupInput carries the sanitized signup fields.
type SignupInput struct {
	FullName      string
	NationalID    string
	Username      string
	AccountNumber string
	Password      string
}

// SanitizeSignup returns a copy of in with every free-form field
// sanitized. Passwords are left untouched so hashing sees exactly what
// the customer typed.
func SanitizeSignup(in SignupInput) SignupInput {
	in.FullName = Sanitize(in.FullName)
	in.NationalID = Sanitize(in.NationalID)
	in.Username = Sanitize(in.Username)
	in.AccountNumber = Sanitize(in.AccountNumber)
	return in
}

// ValidateSignup checks every field and returns one human-readable
// message per failing field. Validation is exhaustive: all failures are
// collected before reporting, never fail-fast.
func ValidateSignup(in SignupInput) []string {
	var errs []string
	if !ValidFullName(in.FullName) {
		errs = append(errs, "fullName must be 2-50 letters and spaces")
	}
	if !ValidNationalID(in.NationalID) {
		errs = append(errs, "idNumber must be exactly 13 digits")
	}
	if !ValidUsername(in.Username) {
		errs = append(errs, "username must be 3-20 letters, digits or underscores")
	}
	if !ValidAccountNumber(in.AccountNumber) {
		errs = append(errs, "accountNumber must be 10-12 digits")
	}
	if len(in.Password) < MinPasswordLength {
		errs = append(errs, "password must be at least 4 characters")
	}
	return errs
}
