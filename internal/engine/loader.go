package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Fixed file names of the seven Olist tables inside the data directory.
const (
	ordersFile       = "olist_orders_dataset.csv"
	customersFile    = "olist_customers_dataset.csv"
	itemsFile        = "olist_order_items_dataset.csv"
	productsFile     = "olist_products_dataset.csv"
	paymentsFile     = "olist_order_payments_dataset.csv"
	reviewsFile      = "olist_order_reviews_dataset.csv"
	translationsFile = "product_category_name_translation.csv"
)

// LoadDataset parses all seven tables from dir. It either returns a complete
// Dataset or an error; a single unreadable table fails the whole load.
func LoadDataset(dir string) (*Dataset, error) {
	ds := &Dataset{}
	var err error

	if ds.Orders, err = loadOrders(filepath.Join(dir, ordersFile)); err != nil {
		return nil, err
	}
	if ds.Customers, err = loadCustomers(filepath.Join(dir, customersFile)); err != nil {
		return nil, err
	}
	if ds.Items, err = loadItems(filepath.Join(dir, itemsFile)); err != nil {
		return nil, err
	}
	if ds.Products, err = loadProducts(filepath.Join(dir, productsFile)); err != nil {
		return nil, err
	}
	if ds.Payments, err = loadPayments(filepath.Join(dir, paymentsFile)); err != nil {
		return nil, err
	}
	if ds.Reviews, err = loadReviews(filepath.Join(dir, reviewsFile)); err != nil {
		return nil, err
	}
	if ds.Translations, err = loadTranslations(filepath.Join(dir, translationsFile)); err != nil {
		return nil, err
	}
	return ds, nil
}

// table wraps a parsed CSV: header-indexed rows, extra columns ignored.
type table struct {
	cols map[string]int
	rows [][]string
}

func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// readTable parses one CSV file. The first row is the header; every column in
// required must be present or the load errors out. Blank lines and rows too
// short to be meaningful are skipped rather than failing the table.
func readTable(path string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, we index by header

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", filepath.Base(path), err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", filepath.Base(path), col)
		}
	}

	t := &table{cols: cols}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		if isBlank(row) {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseTime accepts the dataset's "2006-01-02 15:04:05" stamps, falls back to
// date-only, and maps anything else (including empty cells) to the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseInt(s string) int {
	// review scores come through as "5" or sometimes "5.0"
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return int(parseFloat(s))
}

func loadOrders(path string) ([]Order, error) {
	t, err := readTable(path,
		"order_id", "customer_id", "order_status", "order_purchase_timestamp",
		"order_approved_at", "order_delivered_carrier_date",
		"order_delivered_customer_date", "order_estimated_delivery_date")
	if err != nil {
		return nil, err
	}
	orders := make([]Order, 0, len(t.rows))
	for _, row := range t.rows {
		orders = append(orders, Order{
			ID:          t.get(row, "order_id"),
			CustomerID:  t.get(row, "customer_id"),
			Status:      t.get(row, "order_status"),
			PurchasedAt: parseTime(t.get(row, "order_purchase_timestamp")),
			ApprovedAt:  parseTime(t.get(row, "order_approved_at")),
			CarrierAt:   parseTime(t.get(row, "order_delivered_carrier_date")),
			DeliveredAt: parseTime(t.get(row, "order_delivered_customer_date")),
			EstimatedAt: parseTime(t.get(row, "order_estimated_delivery_date")),
		})
	}
	return orders, nil
}

func loadCustomers(path string) ([]Customer, error) {
	t, err := readTable(path, "customer_id", "customer_state", "customer_city")
	if err != nil {
		return nil, err
	}
	customers := make([]Customer, 0, len(t.rows))
	for _, row := range t.rows {
		customers = append(customers, Customer{
			ID:    t.get(row, "customer_id"),
			State: t.get(row, "customer_state"),
			City:  t.get(row, "customer_city"),
		})
	}
	return customers, nil
}

func loadItems(path string) ([]OrderItem, error) {
	t, err := readTable(path, "order_id", "product_id", "seller_id", "price")
	if err != nil {
		return nil, err
	}
	items := make([]OrderItem, 0, len(t.rows))
	for _, row := range t.rows {
		items = append(items, OrderItem{
			OrderID:   t.get(row, "order_id"),
			ProductID: t.get(row, "product_id"),
			SellerID:  t.get(row, "seller_id"),
			Price:     parseFloat(t.get(row, "price")),
		})
	}
	return items, nil
}

func loadProducts(path string) ([]Product, error) {
	t, err := readTable(path, "product_id", "product_category_name")
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(t.rows))
	for _, row := range t.rows {
		products = append(products, Product{
			ID:       t.get(row, "product_id"),
			Category: t.get(row, "product_category_name"),
		})
	}
	return products, nil
}

func loadPayments(path string) ([]Payment, error) {
	t, err := readTable(path, "order_id", "payment_type", "payment_value")
	if err != nil {
		return nil, err
	}
	payments := make([]Payment, 0, len(t.rows))
	for _, row := range t.rows {
		payments = append(payments, Payment{
			OrderID: t.get(row, "order_id"),
			Type:    t.get(row, "payment_type"),
			Value:   parseFloat(t.get(row, "payment_value")),
		})
	}
	return payments, nil
}

func loadReviews(path string) ([]Review, error) {
	t, err := readTable(path, "order_id", "review_score")
	if err != nil {
		return nil, err
	}
	reviews := make([]Review, 0, len(t.rows))
	for _, row := range t.rows {
		reviews = append(reviews, Review{
			OrderID: t.get(row, "order_id"),
			Score:   parseInt(t.get(row, "review_score")),
		})
	}
	return reviews, nil
}

func loadTranslations(path string) ([]CategoryTranslation, error) {
	t, err := readTable(path, "product_category_name", "product_category_name_english")
	if err != nil {
		return nil, err
	}
	trans := make([]CategoryTranslation, 0, len(t.rows))
	for _, row := range t.rows {
		trans = append(trans, CategoryTranslation{
			Category: t.get(row, "product_category_name"),
			English:  t.get(row, "product_category_name_english"),
		})
	}
	return trans, nil
}
