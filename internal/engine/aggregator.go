package engine

import (
	"math"
	"sort"

	"backend/internal/models"
)

// Pure grouped reductions over (filtered orders, joins). Rounding follows the
// dashboard contract: ratios to 1 decimal, currency breakdowns to 2, headline
// revenue to a whole unit. Zero denominators always yield 0.

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }

const statusDelivered = "delivered"
const statusCanceled = "canceled"

// BuildKPI computes the headline card: order count, delivered rate, summed
// item revenue and mean review score across the filtered set.
func BuildKPI(orders []Order, j *Joins) models.KPI {
	total := len(orders)

	delivered := 0
	revenue := 0.0
	scoreSum := 0
	reviewCount := 0
	for _, o := range orders {
		if o.Status == statusDelivered {
			delivered++
		}
		for _, it := range j.Items[o.ID] {
			revenue += it.Price
		}
		if r, ok := j.Reviews[o.ID]; ok {
			scoreSum += r.Score
			reviewCount++
		}
	}

	kpi := models.KPI{TotalOrders: total, TotalRevenue: math.Round(revenue)}
	if total > 0 {
		kpi.DeliveredRate = round1(float64(delivered) / float64(total) * 100)
	}
	if reviewCount > 0 {
		kpi.AvgReviewScore = round1(float64(scoreSum) / float64(reviewCount))
	}
	return kpi
}

// BuildDeliveryStatus counts orders per status, buckets in first-seen order.
// An empty status is a bucket like any other, so the counts always sum to the
// filtered total.
func BuildDeliveryStatus(orders []Order) []models.DeliveryStatus {
	counts := make(map[string]int)
	var seen []string
	for _, o := range orders {
		if _, ok := counts[o.Status]; !ok {
			seen = append(seen, o.Status)
		}
		counts[o.Status]++
	}

	out := make([]models.DeliveryStatus, 0, len(seen))
	for _, s := range seen {
		out = append(out, models.DeliveryStatus{Status: s, Count: counts[s]})
	}
	return out
}

type stateAcc struct {
	total     int
	onTime    int
	late      int
	canceled  int
	delayDays int
	delayed   int
}

// BuildStatePerformance groups delivery outcomes by customer state, top 15 by
// order volume. A delivered order missing either the delivered or estimated
// timestamp lands in neither the on-time nor the late bucket.
func BuildStatePerformance(orders []Order, j *Joins) []models.StatePerformance {
	stats := make(map[string]*stateAcc)
	for _, o := range orders {
		c, ok := j.Customers[o.CustomerID]
		if !ok {
			continue
		}
		acc := stats[c.State]
		if acc == nil {
			acc = &stateAcc{}
			stats[c.State] = acc
		}
		acc.total++

		switch o.Status {
		case statusDelivered:
			if o.DeliveredAt.IsZero() || o.EstimatedAt.IsZero() {
				continue
			}
			if !o.DeliveredAt.After(o.EstimatedAt) {
				acc.onTime++
			} else {
				acc.late++
				acc.delayDays += int(o.DeliveredAt.Sub(o.EstimatedAt).Hours() / 24)
				acc.delayed++
			}
		case statusCanceled:
			acc.canceled++
		}
	}

	out := make([]models.StatePerformance, 0, len(stats))
	for state, acc := range stats {
		row := models.StatePerformance{
			State:           state,
			TotalOrders:     acc.total,
			DeliveredOnTime: acc.onTime,
			DeliveredLate:   acc.late,
			Canceled:        acc.canceled,
		}
		if acc.delayed > 0 {
			row.AvgDelayDays = round1(float64(acc.delayDays) / float64(acc.delayed))
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, k int) bool { return out[i].TotalOrders > out[k].TotalOrders })
	if len(out) > 15 {
		out = out[:15]
	}
	return out
}

type monthAcc struct {
	total     int
	delivered int
	canceled  int
	revenue   float64
}

// BuildMonthlyTrends groups by purchase month ("YYYY-MM"), ascending. Orders
// without a parseable purchase timestamp are skipped.
func BuildMonthlyTrends(orders []Order, j *Joins) []models.MonthlyTrend {
	months := make(map[string]*monthAcc)
	years := make(map[string]int)
	names := make(map[string]string)

	for _, o := range orders {
		key := MonthKey(o.PurchasedAt)
		if key == "" {
			continue
		}
		acc := months[key]
		if acc == nil {
			acc = &monthAcc{}
			months[key] = acc
			years[key] = o.PurchasedAt.Year()
			names[key] = o.PurchasedAt.Format("Jan")
		}
		acc.total++
		for _, it := range j.Items[o.ID] {
			acc.revenue += it.Price
		}
		switch o.Status {
		case statusDelivered:
			acc.delivered++
		case statusCanceled:
			acc.canceled++
		}
	}

	out := make([]models.MonthlyTrend, 0, len(months))
	for key, acc := range months {
		out = append(out, models.MonthlyTrend{
			Month:       names[key],
			Year:        years[key],
			MonthYear:   key,
			TotalOrders: acc.total,
			Delivered:   acc.delivered,
			Canceled:    acc.canceled,
			Revenue:     math.Round(acc.revenue),
		})
	}

	sort.Slice(out, func(i, k int) bool {
		if out[i].Year != out[k].Year {
			return out[i].Year < out[k].Year
		}
		return out[i].MonthYear < out[k].MonthYear
	})
	return out
}

// BuildProductCategories sums item revenue per English category name across
// the filtered orders' items, top 20 by revenue. Items whose product has no
// category contribute to no bucket.
func BuildProductCategories(orders []Order, j *Joins) []models.ProductCategory {
	type catAcc struct {
		count   int
		revenue float64
	}
	stats := make(map[string]*catAcc)

	for _, o := range orders {
		for _, it := range j.Items[o.ID] {
			cat := j.EnglishCategory(it.ProductID)
			if cat == "" {
				continue
			}
			acc := stats[cat]
			if acc == nil {
				acc = &catAcc{}
				stats[cat] = acc
			}
			acc.count++
			acc.revenue += it.Price
		}
	}

	out := make([]models.ProductCategory, 0, len(stats))
	for cat, acc := range stats {
		out = append(out, models.ProductCategory{
			Category:   cat,
			OrderCount: acc.count,
			Revenue:    round2(acc.revenue),
		})
	}

	sort.Slice(out, func(i, k int) bool { return out[i].Revenue > out[k].Revenue })
	if len(out) > 20 {
		out = out[:20]
	}
	return out
}

// BuildPaymentMethods counts payment rows per type across the filtered
// orders, with each type's share of all counted transactions.
func BuildPaymentMethods(orders []Order, j *Joins) []models.PaymentMethod {
	type payAcc struct {
		count int
		value float64
	}
	stats := make(map[string]*payAcc)
	totalTx := 0

	for _, o := range orders {
		for _, p := range j.Payments[o.ID] {
			acc := stats[p.Type]
			if acc == nil {
				acc = &payAcc{}
				stats[p.Type] = acc
			}
			acc.count++
			acc.value += p.Value
			totalTx++
		}
	}

	out := make([]models.PaymentMethod, 0, len(stats))
	for typ, acc := range stats {
		row := models.PaymentMethod{
			PaymentType:      typ,
			TransactionCount: acc.count,
			TotalValue:       round2(acc.value),
			AvgValue:         round2(acc.value / float64(acc.count)),
		}
		if totalTx > 0 {
			row.Percentage = round1(float64(acc.count) / float64(totalTx) * 100)
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, k int) bool { return out[i].TransactionCount > out[k].TransactionCount })
	return out
}

// BuildReviewsAnalysis builds the 1-5 score histogram over the filtered
// orders' reviews. The standalone endpoint reports the average to 2 decimals,
// the combined summary to 1; avgDecimals picks between them. A dataset with
// no reviews resolves every ratio to 0.
func BuildReviewsAnalysis(orders []Order, j *Joins, avgDecimals int) models.ReviewsAnalysis {
	counts := make(map[int]int)
	scoreSum := 0
	total := 0

	for _, o := range orders {
		r, ok := j.Reviews[o.ID]
		if !ok {
			continue
		}
		counts[r.Score]++
		scoreSum += r.Score
		total++
	}

	dist := make([]models.ScoreBucket, 0, len(counts))
	for score, count := range counts {
		dist = append(dist, models.ScoreBucket{Score: score, Count: count})
	}
	sort.Slice(dist, func(i, k int) bool { return dist[i].Score < dist[k].Score })

	res := models.ReviewsAnalysis{ScoreDistribution: dist, TotalReviews: total}
	if total == 0 {
		return res
	}

	avg := float64(scoreSum) / float64(total)
	if avgDecimals >= 2 {
		res.AverageScore = round2(avg)
	} else {
		res.AverageScore = round1(avg)
	}

	positive := float64(counts[5]+counts[4]) / float64(total) * 100
	res.PositivePercentage = round1(positive)
	res.NegativePercentage = round1(100 - positive)
	return res
}

// BuildDemographics counts filtered orders' customers by state (with distinct
// cities per state) and by city (top 10). The caller trims byState for the
// combined view.
func BuildDemographics(orders []Order, j *Joins) models.Demographics {
	type demoAcc struct {
		count  int
		cities map[string]struct{}
	}
	states := make(map[string]*demoAcc)
	cities := make(map[string]int)

	for _, o := range orders {
		c, ok := j.Customers[o.CustomerID]
		if !ok {
			continue
		}
		acc := states[c.State]
		if acc == nil {
			acc = &demoAcc{cities: make(map[string]struct{})}
			states[c.State] = acc
		}
		acc.count++
		acc.cities[c.City] = struct{}{}
		cities[c.City]++
	}

	byState := make([]models.StateDemographic, 0, len(states))
	for state, acc := range states {
		byState = append(byState, models.StateDemographic{
			State:         state,
			CustomerCount: acc.count,
			CityCount:     len(acc.cities),
		})
	}
	sort.Slice(byState, func(i, k int) bool { return byState[i].CustomerCount > byState[k].CustomerCount })

	topCities := make([]models.CityCount, 0, len(cities))
	for city, count := range cities {
		topCities = append(topCities, models.CityCount{City: city, Count: count})
	}
	sort.Slice(topCities, func(i, k int) bool { return topCities[i].Count > topCities[k].Count })
	if len(topCities) > 10 {
		topCities = topCities[:10]
	}

	return models.Demographics{ByState: byState, TopCities: topCities}
}

// BuildMLMetrics fabricates the delivery-prediction panel from status counts.
// The arithmetic is intentionally illustrative: late deliveries play false
// positives, cancellations play false negatives, and the true negatives are a
// hard-coded 2% of the total. Keep it as-is.
func BuildMLMetrics(orders []Order) models.MLMetrics {
	total := len(orders)

	delivered := 0
	canceled := 0
	late := 0
	for _, o := range orders {
		switch o.Status {
		case statusDelivered:
			delivered++
			if !o.DeliveredAt.IsZero() && !o.EstimatedAt.IsZero() && o.DeliveredAt.After(o.EstimatedAt) {
				late++
			}
		case statusCanceled:
			canceled++
		}
	}

	tp := delivered - late
	fp := late
	fn := canceled
	tn := int(math.Round(float64(total) * 0.02))

	var accuracy, precision, recall, f1 float64
	if tp+tn+fp+fn > 0 {
		accuracy = float64(tp+tn) / float64(tp+tn+fp+fn) * 100
	}
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp) * 100
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn) * 100
	}
	if precision+recall > 0 {
		f1 = 2 * (precision * recall) / (precision + recall)
	}

	return models.MLMetrics{
		Accuracy:        round1(accuracy),
		Precision:       round1(precision),
		Recall:          round1(recall),
		F1Score:         round1(f1),
		ConfusionMatrix: models.ConfusionMatrix{TP: tp, TN: tn, FP: fp, FN: fn},
		ClassDistribution: models.ClassDistribution{
			Delivered: delivered,
			Canceled:  canceled,
			Other:     total - delivered - canceled,
		},
		TotalOrders: total,
	}
}

// BuildDashboardSummary composes the combined view. It reuses the standalone
// builders but keeps the summary's own shape quirks: the review average is
// rounded to 1 decimal and byState is the top 10 without city counts.
func BuildDashboardSummary(orders []Order, j *Joins) models.DashboardSummary {
	demo := BuildDemographics(orders, j)
	byState := demo.ByState
	if len(byState) > 10 {
		byState = byState[:10]
	}
	trimmed := make([]models.StateDemographic, 0, len(byState))
	for _, s := range byState {
		trimmed = append(trimmed, models.StateDemographic{State: s.State, CustomerCount: s.CustomerCount})
	}
	demo.ByState = trimmed

	return models.DashboardSummary{
		KPI:                  BuildKPI(orders, j),
		DeliveryStatus:       BuildDeliveryStatus(orders),
		StatePerformance:     BuildStatePerformance(orders, j),
		MonthlyTrends:        BuildMonthlyTrends(orders, j),
		ProductCategories:    BuildProductCategories(orders, j),
		PaymentMethods:       BuildPaymentMethods(orders, j),
		ReviewsAnalysis:      BuildReviewsAnalysis(orders, j, 1),
		CustomerDemographics: demo,
	}
}
