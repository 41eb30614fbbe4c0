package domain

import "testing"

func TestParseEmployeeRole(t *testing.T) {
	valid := map[string]EmployeeRole{
		"TELLER":  EmployeeRoleTeller,
		"manager": EmployeeRoleManager,
		"Admin":   EmployeeRoleAdmin,
	}
	for input, want := range valid {
		got, err := ParseEmployeeRole(input)
		if err != nil {
			t.Errorf("ParseEmployeeRole(%q) returned error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseEmployeeRole(%q) = %q, want %q", input, got, want)
		}
	}

	for _, input := range []string{"", "SUPERVISOR", "TELLER "} {
		if _, err := ParseEmployeeRole(input); err == nil {
			t.Errorf("ParseEmployeeRole(%q) accepted an unknown role", input)
		}
	}
}
