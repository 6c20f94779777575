package engine

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFixture lays out a small but complete seven-table data directory:
// O1 delivered on time (SP), O2 delivered late with a duplicate review (SP),
// O3 canceled with no delivery timestamps (RJ), O4 still processing (MG).
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		ordersFile: `order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date
O1,C1,delivered,2018-01-02 10:00:00,2018-01-02 11:00:00,2018-01-03 09:00:00,2018-01-05 14:30:00,2018-01-10 00:00:00
O2,C2,delivered,2018-01-04 08:15:00,2018-01-04 09:00:00,2018-01-06 10:00:00,2018-01-15 00:00:00,2018-01-10 00:00:00

O3,C3,canceled,2018-02-01 09:00:00,,,,2018-02-15 00:00:00
O4,C4,processing,2018-02-10 12:00:00,2018-02-10 12:30:00,,,2018-02-20 00:00:00
`,
		customersFile: `customer_id,customer_state,customer_city
C1,SP,sao paulo
C2,SP,campinas
C3,RJ,rio de janeiro
C4,MG,belo horizonte
`,
		itemsFile: `order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value
O1,1,P1,S1,2018-01-04 00:00:00,100.00,10.00
O1,2,P2,S1,2018-01-04 00:00:00,20.50,5.00
O2,1,P1,S2,2018-01-06 00:00:00,30.00,8.00
O4,1,P3,S3,2018-02-12 00:00:00,10.00,2.00
`,
		productsFile: `product_id,product_category_name
P1,moveis_decoracao
P2,beleza_saude
P3,
`,
		paymentsFile: `order_id,payment_sequential,payment_type,payment_installments,payment_value
O1,1,credit_card,3,100.00
O1,2,voucher,1,20.00
O2,1,boleto,1,30.00
O4,1,credit_card,1,10.00
`,
		reviewsFile: `review_id,order_id,review_score
R1,O1,5
R2,O2,3
R3,O2,4
`,
		translationsFile: `product_category_name,product_category_name_english
moveis_decoracao,furniture_decor
`,
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
