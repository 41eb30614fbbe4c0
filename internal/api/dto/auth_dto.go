package dto

// SignupRequest payload for customer signup.
type SignupRequest struct {
	FullName      string `json:"fullName"`
	IDNumber      string `json:"idNumber"`
	Username      string `json:"username"`
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

// LoginRequest payload for customer login. At least one of username or
// accountNumber must be supplied alongside the password.
type LoginRequest struct {
	Username      string `json:"username"`
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

// CheckUserRequest payload for the existence check.
type CheckUserRequest struct {
	Username      string `json:"username"`
	AccountNumber string `json:"accountNumber"`
}

// EmployeeLoginRequest payload for employee login.
type EmployeeLoginRequest struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}
