package engine

import "time"

// Row types for the seven source tables. A zero time.Time means the order has
// not reached that stage (or the cell was unparseable).

type Order struct {
	ID          string
	CustomerID  string
	Status      string
	PurchasedAt time.Time
	ApprovedAt  time.Time
	CarrierAt   time.Time
	DeliveredAt time.Time
	EstimatedAt time.Time
}

type Customer struct {
	ID    string
	State string
	City  string
}

type OrderItem struct {
	OrderID   string
	ProductID string
	SellerID  string
	Price     float64
}

type Product struct {
	ID       string
	Category string // source-locale spelling
}

type Payment struct {
	OrderID string
	Type    string
	Value   float64
}

type Review struct {
	OrderID string
	Score   int
}

type CategoryTranslation struct {
	Category string
	English  string
}

// Dataset is one immutable load of all seven tables.
type Dataset struct {
	Orders       []Order
	Customers    []Customer
	Items        []OrderItem
	Products     []Product
	Payments     []Payment
	Reviews      []Review
	Translations []CategoryTranslation
}

// MonthKey formats a purchase timestamp as "YYYY-MM", the grouping and
// filtering key for everything month-scoped. Zero time has no key.
func MonthKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01")
}
