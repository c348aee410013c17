package enums

import "fmt"

// TransactionType represents the kind of money movement recorded against a station.
type TransactionType string

const (
	TransactionTypeFuelSale     TransactionType = "fuel_sale"
	TransactionTypeStoreSale    TransactionType = "store_sale"
	TransactionTypeExpense      TransactionType = "expense"
	TransactionTypeFuelDelivery TransactionType = "fuel_delivery"
	TransactionTypeOther        TransactionType = "other"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeFuelSale,
	TransactionTypeStoreSale,
	TransactionTypeExpense,
	TransactionTypeFuelDelivery,
	TransactionTypeOther,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
