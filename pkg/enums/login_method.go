package enums

import "fmt"

// LoginMethod represents how an account authenticates.
type LoginMethod string

const (
	LoginMethodEmailPassword LoginMethod = "email_password"
	LoginMethodExternal      LoginMethod = "external"
)

var validLoginMethods = []LoginMethod{
	LoginMethodEmailPassword,
	LoginMethodExternal,
}

// String implements fmt.Stringer.
func (l LoginMethod) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LoginMethod.
func (l LoginMethod) IsValid() bool {
	for _, candidate := range validLoginMethods {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLoginMethod converts raw input into a LoginMethod.
func ParseLoginMethod(value string) (LoginMethod, error) {
	for _, candidate := range validLoginMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid login method %q", value)
}
