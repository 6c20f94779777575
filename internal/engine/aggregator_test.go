package engine

import (
	"testing"
	"time"

	"backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func loadFixture(t *testing.T) (*Dataset, *Joins) {
	t.Helper()
	ds, err := LoadDataset(writeFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	return ds, BuildJoins(ds)
}

func TestBuildKPI(t *testing.T) {
	ds, j := loadFixture(t)

	kpi := BuildKPI(ds.Orders, j)
	assert.Equal(t, 4, kpi.TotalOrders)
	assert.Equal(t, 50.0, kpi.DeliveredRate)
	// 120.50 + 30.00 + 10.00, rounded to a whole unit
	assert.Equal(t, 161.0, kpi.TotalRevenue)
	// O1 scored 5, O2's duplicate review resolves to 4
	assert.Equal(t, 4.5, kpi.AvgReviewScore)
}

func TestBuildKPIEmpty(t *testing.T) {
	_, j := loadFixture(t)

	kpi := BuildKPI(nil, j)
	assert.Equal(t, 0, kpi.TotalOrders)
	assert.Equal(t, 0.0, kpi.DeliveredRate)
	assert.Equal(t, 0.0, kpi.TotalRevenue)
	assert.Equal(t, 0.0, kpi.AvgReviewScore)
}

func TestBuildDeliveryStatus(t *testing.T) {
	ds, _ := loadFixture(t)

	hist := BuildDeliveryStatus(ds.Orders)

	// buckets appear in first-seen order
	assert.Equal(t, "delivered", hist[0].Status)
	assert.Equal(t, 2, hist[0].Count)

	// per-status counts always sum to the filtered total
	sum := 0
	for _, h := range hist {
		sum += h.Count
	}
	assert.Equal(t, len(ds.Orders), sum)
}

func TestBuildStatePerformance(t *testing.T) {
	// O1: delivered 2018-01-05 vs estimated 2018-01-10 -> on time (SP)
	// O2: delivered 2018-01-15 vs estimated 2018-01-10 -> 5 days late (SP)
	// O3: canceled (RJ)
	orders := []Order{
		{ID: "O1", CustomerID: "C1", Status: "delivered",
			DeliveredAt: time.Date(2018, 1, 5, 0, 0, 0, 0, time.UTC),
			EstimatedAt: time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "O2", CustomerID: "C2", Status: "delivered",
			DeliveredAt: time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC),
			EstimatedAt: time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "O3", CustomerID: "C3", Status: "canceled"},
	}
	j := &Joins{Customers: map[string]Customer{
		"C1": {ID: "C1", State: "SP"},
		"C2": {ID: "C2", State: "SP"},
		"C3": {ID: "C3", State: "RJ"},
	}}

	perf := BuildStatePerformance(orders, j)
	if !assert.Len(t, perf, 2) {
		return
	}

	sp := perf[0] // SP has more orders, sorts first
	assert.Equal(t, "SP", sp.State)
	assert.Equal(t, 2, sp.TotalOrders)
	assert.Equal(t, 1, sp.DeliveredOnTime)
	assert.Equal(t, 1, sp.DeliveredLate)
	assert.Equal(t, 0, sp.Canceled)
	assert.Equal(t, 5.0, sp.AvgDelayDays)

	rj := perf[1]
	assert.Equal(t, "RJ", rj.State)
	assert.Equal(t, 1, rj.TotalOrders)
	assert.Equal(t, 1, rj.Canceled)
	assert.Equal(t, 0, rj.DeliveredOnTime)
	assert.Equal(t, 0, rj.DeliveredLate)
	assert.Equal(t, 0.0, rj.AvgDelayDays)
}

func TestBuildDeliveryStatusEmptyStatusBucket(t *testing.T) {
	// a missing order_status groups as its own "" bucket; the histogram
	// must still account for every filtered order
	orders := []Order{
		{ID: "O1", Status: "delivered"},
		{ID: "O2", Status: ""},
		{ID: "O3", Status: ""},
	}

	hist := BuildDeliveryStatus(orders)
	if !assert.Len(t, hist, 2) {
		return
	}
	assert.Equal(t, models.DeliveryStatus{Status: "", Count: 2}, hist[1])

	sum := 0
	for _, h := range hist {
		sum += h.Count
	}
	assert.Equal(t, len(orders), sum)
}

func TestBuildStatePerformanceEmptyStateBucket(t *testing.T) {
	// customers without a state group under "", same as the demographics
	// view, rather than vanishing from the state table
	orders := []Order{
		{ID: "O1", CustomerID: "C1", Status: "canceled"},
		{ID: "O2", CustomerID: "C1", Status: "canceled"},
	}
	j := &Joins{Customers: map[string]Customer{"C1": {ID: "C1", City: "limbo"}}}

	perf := BuildStatePerformance(orders, j)
	if assert.Len(t, perf, 1) {
		assert.Equal(t, "", perf[0].State)
		assert.Equal(t, 2, perf[0].TotalOrders)
		assert.Equal(t, 2, perf[0].Canceled)
	}

	demo := BuildDemographics(orders, j)
	if assert.Len(t, demo.ByState, 1) {
		assert.Equal(t, "", demo.ByState[0].State)
		assert.Equal(t, 2, demo.ByState[0].CustomerCount)
	}
}

func TestBuildStatePerformanceDeliveredWithoutTimestamps(t *testing.T) {
	orders := []Order{{ID: "O1", CustomerID: "C1", Status: "delivered"}}
	j := &Joins{Customers: map[string]Customer{"C1": {ID: "C1", State: "SP"}}}

	perf := BuildStatePerformance(orders, j)
	if assert.Len(t, perf, 1) {
		// counted in the total, but in neither delivery bucket
		assert.Equal(t, 1, perf[0].TotalOrders)
		assert.Equal(t, 0, perf[0].DeliveredOnTime)
		assert.Equal(t, 0, perf[0].DeliveredLate)
	}
}

func TestBuildMonthlyTrends(t *testing.T) {
	ds, j := loadFixture(t)

	trends := BuildMonthlyTrends(ds.Orders, j)
	if !assert.Len(t, trends, 2) {
		return
	}

	jan := trends[0]
	assert.Equal(t, "2018-01", jan.MonthYear)
	assert.Equal(t, "Jan", jan.Month)
	assert.Equal(t, 2018, jan.Year)
	assert.Equal(t, 2, jan.TotalOrders)
	assert.Equal(t, 2, jan.Delivered)
	assert.Equal(t, 0, jan.Canceled)
	assert.Equal(t, 151.0, jan.Revenue) // 120.50 + 30.00 rounded

	feb := trends[1]
	assert.Equal(t, "2018-02", feb.MonthYear)
	assert.Equal(t, 2, feb.TotalOrders)
	assert.Equal(t, 1, feb.Canceled)
	assert.Equal(t, 10.0, feb.Revenue)
}

func TestBuildProductCategories(t *testing.T) {
	ds, j := loadFixture(t)

	cats := BuildProductCategories(ds.Orders, j)
	if !assert.Len(t, cats, 2) {
		return
	}

	// translated category first (highest revenue)
	assert.Equal(t, "furniture_decor", cats[0].Category)
	assert.Equal(t, 2, cats[0].OrderCount)
	assert.Equal(t, 130.0, cats[0].Revenue)

	// untranslated category keeps its raw name; O4's uncategorized item
	// lands in no bucket at all
	assert.Equal(t, "beleza_saude", cats[1].Category)
	assert.Equal(t, 20.5, cats[1].Revenue)
}

func TestBuildPaymentMethodsSplitPayment(t *testing.T) {
	// single order paid with two methods: two entries, 50% each
	orders := []Order{{ID: "O1", Status: "delivered"}}
	j := &Joins{Payments: map[string][]Payment{
		"O1": {
			{OrderID: "O1", Type: "credit_card", Value: 100},
			{OrderID: "O1", Type: "voucher", Value: 20},
		},
	}}

	methods := BuildPaymentMethods(orders, j)
	if !assert.Len(t, methods, 2) {
		return
	}
	for _, m := range methods {
		assert.Equal(t, 1, m.TransactionCount)
		assert.Equal(t, 50.0, m.Percentage)
	}
}

func TestBuildPaymentMethods(t *testing.T) {
	ds, j := loadFixture(t)

	methods := BuildPaymentMethods(ds.Orders, j)
	if !assert.Len(t, methods, 3) {
		return
	}

	cc := methods[0]
	assert.Equal(t, "credit_card", cc.PaymentType)
	assert.Equal(t, 2, cc.TransactionCount)
	assert.Equal(t, 110.0, cc.TotalValue)
	assert.Equal(t, 55.0, cc.AvgValue)
	assert.Equal(t, 50.0, cc.Percentage)
}

func TestBuildReviewsAnalysis(t *testing.T) {
	ds, j := loadFixture(t)

	res := BuildReviewsAnalysis(ds.Orders, j, 2)
	assert.Equal(t, 2, res.TotalReviews)
	assert.Equal(t, 4.5, res.AverageScore)
	assert.Equal(t, []int{4, 5}, []int{res.ScoreDistribution[0].Score, res.ScoreDistribution[1].Score})
	assert.Equal(t, 100.0, res.PositivePercentage)
	assert.Equal(t, 0.0, res.NegativePercentage)
	assert.Equal(t, 100.0, res.PositivePercentage+res.NegativePercentage)
}

func TestBuildReviewsAnalysisRounding(t *testing.T) {
	// three reviews averaging 3.6667: 3.67 standalone, 3.7 combined
	orders := []Order{{ID: "O1"}, {ID: "O2"}, {ID: "O3"}}
	j := &Joins{Reviews: map[string]Review{
		"O1": {OrderID: "O1", Score: 5},
		"O2": {OrderID: "O2", Score: 5},
		"O3": {OrderID: "O3", Score: 1},
	}}

	assert.Equal(t, 3.67, BuildReviewsAnalysis(orders, j, 2).AverageScore)
	assert.Equal(t, 3.7, BuildReviewsAnalysis(orders, j, 1).AverageScore)

	res := BuildReviewsAnalysis(orders, j, 2)
	assert.Equal(t, 66.7, res.PositivePercentage)
	assert.Equal(t, 33.3, res.NegativePercentage)
	assert.InDelta(t, 100.0, res.PositivePercentage+res.NegativePercentage, 0.1)
}

func TestBuildReviewsAnalysisNoReviews(t *testing.T) {
	res := BuildReviewsAnalysis([]Order{{ID: "O1"}}, &Joins{Reviews: map[string]Review{}}, 2)
	assert.Equal(t, 0, res.TotalReviews)
	assert.Equal(t, 0.0, res.AverageScore)
	assert.Equal(t, 0.0, res.PositivePercentage)
	assert.Equal(t, 0.0, res.NegativePercentage)
}

func TestBuildDemographics(t *testing.T) {
	ds, j := loadFixture(t)

	demo := BuildDemographics(ds.Orders, j)
	if !assert.Len(t, demo.ByState, 3) {
		return
	}
	sp := demo.ByState[0]
	assert.Equal(t, "SP", sp.State)
	assert.Equal(t, 2, sp.CustomerCount)
	assert.Equal(t, 2, sp.CityCount)
	assert.Len(t, demo.TopCities, 4)
}

func TestStateFilterThenDemographicsSingleState(t *testing.T) {
	ds, j := loadFixture(t)

	filtered := Filter{State: "SP"}.Apply(ds.Orders, j)
	demo := BuildDemographics(filtered, j)

	if assert.Len(t, demo.ByState, 1) {
		assert.Equal(t, "SP", demo.ByState[0].State)
	}
}

func TestBuildMLMetrics(t *testing.T) {
	ds, _ := loadFixture(t)

	// delivered=2 (one late), canceled=1, other=1
	// tp=1, fp=1, fn=1, tn=round(4*0.02)=0
	m := BuildMLMetrics(ds.Orders)
	assert.Equal(t, 4, m.TotalOrders)
	assert.Equal(t, models.ConfusionMatrix{TP: 1, TN: 0, FP: 1, FN: 1}, m.ConfusionMatrix)
	assert.Equal(t, 2, m.ClassDistribution.Delivered)
	assert.Equal(t, 1, m.ClassDistribution.Canceled)
	assert.Equal(t, 1, m.ClassDistribution.Other)
	assert.Equal(t, 33.3, m.Accuracy)
	assert.Equal(t, 50.0, m.Precision)
	assert.Equal(t, 50.0, m.Recall)
	assert.Equal(t, 50.0, m.F1Score)
}

func TestBuildMLMetricsEmpty(t *testing.T) {
	m := BuildMLMetrics(nil)
	assert.Equal(t, 0.0, m.Accuracy)
	assert.Equal(t, 0.0, m.Precision)
	assert.Equal(t, 0.0, m.Recall)
	assert.Equal(t, 0.0, m.F1Score)
}

func TestBuildDashboardSummary(t *testing.T) {
	ds, j := loadFixture(t)

	sum := BuildDashboardSummary(ds.Orders, j)
	assert.Equal(t, 4, sum.KPI.TotalOrders)
	assert.NotEmpty(t, sum.DeliveryStatus)
	assert.NotEmpty(t, sum.StatePerformance)
	assert.NotEmpty(t, sum.MonthlyTrends)

	// the combined view rounds the review average to 1 decimal and trims
	// byState to customer counts only
	assert.Equal(t, 4.5, sum.ReviewsAnalysis.AverageScore)
	for _, s := range sum.CustomerDemographics.ByState {
		assert.Zero(t, s.CityCount)
	}
}
