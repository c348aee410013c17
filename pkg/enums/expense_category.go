package enums

import "fmt"

// ExpenseCategory represents the bucket an expense is booked under.
type ExpenseCategory string

const (
	ExpenseCategoryPayroll     ExpenseCategory = "payroll"
	ExpenseCategoryUtilities   ExpenseCategory = "utilities"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategorySupplies    ExpenseCategory = "supplies"
	ExpenseCategoryRent        ExpenseCategory = "rent"
	ExpenseCategoryInsurance   ExpenseCategory = "insurance"
	ExpenseCategoryTaxes       ExpenseCategory = "taxes"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

var validExpenseCategorys = []ExpenseCategory{
	ExpenseCategoryPayroll,
	ExpenseCategoryUtilities,
	ExpenseCategoryMaintenance,
	ExpenseCategorySupplies,
	ExpenseCategoryRent,
	ExpenseCategoryInsurance,
	ExpenseCategoryTaxes,
	ExpenseCategoryOther,
}

// String implements fmt.Stringer.
func (e ExpenseCategory) String() string {
	return string(e)
}

// IsValid reports whether the value is a known ExpenseCategory.
func (e ExpenseCategory) IsValid() bool {
	for _, candidate := range validExpenseCategorys {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseExpenseCategory converts raw input into a ExpenseCategory.
func ParseExpenseCategory(value string) (ExpenseCategory, error) {
	for _, candidate := range validExpenseCategorys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expense category %q", value)
}
