package engine

// Filter is the five-criteria order predicate behind every endpoint's query
// params. Empty or "all" disables a criterion; active criteria AND together.
type Filter struct {
	Status     string // exact order_status match
	Payment    string // order passes if ANY of its payment rows has this type
	State      string // customer_state via the customer join
	MonthStart string // inclusive "YYYY-MM" lower bound on purchase month
	MonthEnd   string // inclusive "YYYY-MM" upper bound on purchase month
}

func active(v string) bool {
	return v != "" && v != "all"
}

// IsZero reports whether no criterion is active.
func (f Filter) IsZero() bool {
	return !active(f.Status) && !active(f.Payment) && !active(f.State) &&
		!active(f.MonthStart) && !active(f.MonthEnd)
}

// Apply returns the orders satisfying every active criterion. An order whose
// join target is missing fails that criterion (a state filter drops orders
// with no customer record; it never passes them through). Orders without a
// parseable purchase timestamp are excluded whenever a month bound is active.
func (f Filter) Apply(orders []Order, j *Joins) []Order {
	if f.IsZero() {
		return orders
	}

	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.matches(o, j) {
			out = append(out, o)
		}
	}
	return out
}

func (f Filter) matches(o Order, j *Joins) bool {
	if active(f.Status) && o.Status != f.Status {
		return false
	}

	if active(f.MonthStart) || active(f.MonthEnd) {
		key := MonthKey(o.PurchasedAt)
		if key == "" {
			return false
		}
		if active(f.MonthStart) && key < f.MonthStart {
			return false
		}
		if active(f.MonthEnd) && key > f.MonthEnd {
			return false
		}
	}

	if active(f.State) {
		c, ok := j.Customers[o.CustomerID]
		if !ok || c.State != f.State {
			return false
		}
	}

	if active(f.Payment) {
		found := false
		for _, p := range j.Payments[o.ID] {
			if p.Type == f.Payment {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
