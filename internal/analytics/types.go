package analytics

// Revenue aggregates closing report sales in cents.
type Revenue struct {
	TotalRevenue   int64 `json:"totalRevenue"`
	FuelRevenue    int64 `json:"fuelRevenue"`
	GroceryRevenue int64 `json:"groceryRevenue"`
}

// Profit is revenue minus expenses over the same range, in cents.
type Profit struct {
	Revenue  int64 `json:"revenue"`
	Expenses int64 `json:"expenses"`
	Profit   int64 `json:"profit"`
}
