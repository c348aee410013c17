package enums

import "fmt"

// FuelGrade represents a dispensed fuel product.
type FuelGrade string

const (
	FuelGradeRegular FuelGrade = "regular"
	FuelGradePlus    FuelGrade = "plus"
	FuelGradePremium FuelGrade = "premium"
	FuelGradeDiesel  FuelGrade = "diesel"
)

var validFuelGrades = []FuelGrade{
	FuelGradeRegular,
	FuelGradePlus,
	FuelGradePremium,
	FuelGradeDiesel,
}

// String implements fmt.Stringer.
func (f FuelGrade) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FuelGrade.
func (f FuelGrade) IsValid() bool {
	for _, candidate := range validFuelGrades {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFuelGrade converts raw input into a FuelGrade.
func ParseFuelGrade(value string) (FuelGrade, error) {
	for _, candidate := range validFuelGrades {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fuel grade %q", value)
}
