package engine

// Joins holds the per-dataset lookup maps every aggregation shares. Lookups
// return the zero value / missing entry instead of erroring; callers treat a
// missing join as "this row contributes nothing to that dimension".
type Joins struct {
	Customers       map[string]Customer    // customer_id -> customer
	ProductCategory map[string]string      // product_id -> raw category
	CategoryEnglish map[string]string      // raw category -> english name
	Reviews         map[string]Review      // order_id -> review (last row wins)
	Items           map[string][]OrderItem // order_id -> items, source row order
	Payments        map[string][]Payment   // order_id -> payments, source row order
}

// BuildJoins is one O(n) pass per table. Duplicate review rows for an order
// overwrite each other, keeping the last occurrence.
func BuildJoins(ds *Dataset) *Joins {
	j := &Joins{
		Customers:       make(map[string]Customer, len(ds.Customers)),
		ProductCategory: make(map[string]string, len(ds.Products)),
		CategoryEnglish: make(map[string]string, len(ds.Translations)),
		Reviews:         make(map[string]Review, len(ds.Reviews)),
		Items:           make(map[string][]OrderItem),
		Payments:        make(map[string][]Payment),
	}

	for _, c := range ds.Customers {
		j.Customers[c.ID] = c
	}
	for _, p := range ds.Products {
		j.ProductCategory[p.ID] = p.Category
	}
	for _, t := range ds.Translations {
		j.CategoryEnglish[t.Category] = t.English
	}
	for _, r := range ds.Reviews {
		j.Reviews[r.OrderID] = r
	}
	for _, it := range ds.Items {
		j.Items[it.OrderID] = append(j.Items[it.OrderID], it)
	}
	for _, p := range ds.Payments {
		j.Payments[p.OrderID] = append(j.Payments[p.OrderID], p)
	}
	return j
}

// EnglishCategory resolves an item's category bucket: product -> raw category
// -> english translation, falling back to the raw name when untranslated.
// Both return values empty means the item belongs to no bucket.
func (j *Joins) EnglishCategory(productID string) string {
	raw, ok := j.ProductCategory[productID]
	if !ok || raw == "" {
		return ""
	}
	if en, ok := j.CategoryEnglish[raw]; ok && en != "" {
		return en
	}
	return raw
}
