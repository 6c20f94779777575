package models

// DashboardSummary is the combined payload behind /api/dashboard-summary.
type DashboardSummary struct {
	KPI                  KPI                `json:"kpi"`
	DeliveryStatus       []DeliveryStatus   `json:"deliveryStatus"`
	StatePerformance     []StatePerformance `json:"statePerformance"`
	MonthlyTrends        []MonthlyTrend     `json:"monthlyTrends"`
	ProductCategories    []ProductCategory  `json:"productCategories"`
	PaymentMethods       []PaymentMethod    `json:"paymentMethods"`
	ReviewsAnalysis      ReviewsAnalysis    `json:"reviewsAnalysis"`
	CustomerDemographics Demographics       `json:"customerDemographics"`
}

type KPI struct {
	TotalOrders    int     `json:"totalOrders"`
	DeliveredRate  float64 `json:"deliveredRate"`
	TotalRevenue   float64 `json:"totalRevenue"`
	AvgReviewScore float64 `json:"avgReviewScore"`
}

type DeliveryStatus struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type StatePerformance struct {
	State           string  `json:"state"`
	TotalOrders     int     `json:"totalOrders"`
	DeliveredOnTime int     `json:"deliveredOnTime"`
	DeliveredLate   int     `json:"deliveredLate"`
	Canceled        int     `json:"canceled"`
	AvgDelayDays    float64 `json:"avgDelayDays"`
}

type MonthlyTrend struct {
	Month       string  `json:"month"` // short name, e.g. "Jan"
	Year        int     `json:"year"`
	MonthYear   string  `json:"monthYear"` // "YYYY-MM"
	TotalOrders int     `json:"totalOrders"`
	Delivered   int     `json:"delivered"`
	Canceled    int     `json:"canceled"`
	Revenue     float64 `json:"revenue"`
}

type ProductCategory struct {
	Category   string  `json:"category"`
	OrderCount int     `json:"orderCount"`
	Revenue    float64 `json:"revenue"`
}

type PaymentMethod struct {
	PaymentType      string  `json:"paymentType"`
	TransactionCount int     `json:"transactionCount"`
	TotalValue       float64 `json:"totalValue"`
	AvgValue         float64 `json:"avgValue"`
	Percentage       float64 `json:"percentage"`
}

type ScoreBucket struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

type ReviewsAnalysis struct {
	ScoreDistribution  []ScoreBucket `json:"scoreDistribution"`
	AverageScore       float64       `json:"averageScore"`
	TotalReviews       int           `json:"totalReviews"`
	PositivePercentage float64       `json:"positivePercentage"`
	NegativePercentage float64       `json:"negativePercentage"`
}

// StateDemographic carries cityCount only on the standalone endpoint; the
// combined summary trims byState to the plain customer count (top 10).
type StateDemographic struct {
	State         string `json:"state"`
	CustomerCount int    `json:"customerCount"`
	CityCount     int    `json:"cityCount,omitempty"`
}

type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type Demographics struct {
	ByState   []StateDemographic `json:"byState"`
	TopCities []CityCount        `json:"topCities"`
}

type ConfusionMatrix struct {
	TP int `json:"tp"`
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
}

type ClassDistribution struct {
	Delivered int `json:"delivered"`
	Canceled  int `json:"canceled"`
	Other     int `json:"other"`
}

// MLMetrics is the simulated delivery-prediction panel. The counts come from
// order statuses, not a trained model; the true-negative count is a fixed 2%
// of the total.
type MLMetrics struct {
	Accuracy          float64           `json:"accuracy"`
	Precision         float64           `json:"precision"`
	Recall            float64           `json:"recall"`
	F1Score           float64           `json:"f1Score"`
	ConfusionMatrix   ConfusionMatrix   `json:"confusionMatrix"`
	ClassDistribution ClassDistribution `json:"classDistribution"`
	TotalOrders       int               `json:"totalOrders"`
}
