package enums

import "fmt"

// EmployeeRole represents a station staff position.
type EmployeeRole string

const (
	EmployeeRoleManager   EmployeeRole = "manager"
	EmployeeRoleCashier   EmployeeRole = "cashier"
	EmployeeRoleAttendant EmployeeRole = "attendant"
)

var validEmployeeRoles = []EmployeeRole{
	EmployeeRoleManager,
	EmployeeRoleCashier,
	EmployeeRoleAttendant,
}

// String implements fmt.Stringer.
func (e EmployeeRole) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EmployeeRole.
func (e EmployeeRole) IsValid() bool {
	for _, candidate := range validEmployeeRoles {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEmployeeRole converts raw input into a EmployeeRole.
func ParseEmployeeRole(value string) (EmployeeRole, error) {
	for _, candidate := range validEmployeeRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid employee role %q", value)
}
