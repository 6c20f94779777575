package api

import (
	"net/http"

	"backend/internal/engine"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	store *engine.Store
}

func NewHandler(store *engine.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/dashboard-summary", h.GetDashboardSummary)
	api.GET("/delivery-status", h.GetDeliveryStatus)
	api.GET("/state-performance", h.GetStatePerformance)
	api.GET("/monthly-trends", h.GetMonthlyTrends)
	api.GET("/product-categories", h.GetProductCategories)
	api.GET("/payment-methods", h.GetPaymentMethods)
	api.GET("/reviews-analysis", h.GetReviewsAnalysis)
	api.GET("/customer-demographics", h.GetCustomerDemographics)
	api.GET("/ml-metrics", h.GetMLMetrics)
}

// filterFromQuery reads the five optional filter params shared by every
// endpoint. Absent params stay inactive ("" behaves like "all").
func filterFromQuery(c echo.Context) engine.Filter {
	return engine.Filter{
		Status:     c.QueryParam("status"),
		Payment:    c.QueryParam("payment"),
		State:      c.QueryParam("state"),
		MonthStart: c.QueryParam("month_start"),
		MonthEnd:   c.QueryParam("month_end"),
	}
}

// filtered loads the dataset (cached after the first request) and applies the
// request's filter. A load failure aborts the whole request.
func (h *Handler) filtered(c echo.Context) ([]engine.Order, *engine.Joins, error) {
	ds, joins, err := h.store.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	orders := filterFromQuery(c).Apply(ds.Orders, joins)
	return orders, joins, nil
}

func errorJSON(c echo.Context, msg string, err error) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error":   msg,
		"details": err.Error(),
	})
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	status := "ok"
	if !h.store.Ready() {
		status = "loading"
	}
	return c.JSON(http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) GetDashboardSummary(c echo.Context) error {
	orders, joins, err := h.filtered(c)
	if err != nil {
		return errorJSON(c, "Failed to fetch dashboard data", err)
	}
	return c.JSON(http.StatusOK, engine.BuildDashboardSummary(orders, joins))
}

func (h *Handler) GetDeliveryStatus(c echo.Context) error {
	orders, _, err := h.filtered(c)
	if err != nil {
		return errorJSON(c, "Failed to read delivery data", err)
	}
	return c.JSON(http.StatusOK, engine.BuildDeliveryStatus(orders))
}

func (h *Handler) GetStatePerformance(c echo.Context) error {
	orders, joins, err := h.filtered(c)
	if err != nil {
		return errorJSON(c, "Failed to process state performance data", err)
	}
	return c.JSON(http.StatusOK, engine.BuildStatePerformance(orders, joins))
}

func (h *Handler) GetMonthlyTrends(c echo.Context) error {
	orders, joins, err := h.filtered(c)
	if err != nil {
		return errorJSON(c, "Failed to process monthly trends", err)
	}
	return c.JSON(http.StatusOK, engine.BuildMonthlyTrends(orders, joins))
}

func (h *Handler) GetProductCategories(c echo.Context) error {
	orders, joins, err := h.filtered(c)
	if err != nil {
		return errorJSON(c, "Failed to process product categories", err)
	}
	return c.JSON(http.StatusOK, engine.BuildProductCategories(orders, joins))
}

func (h *Handler) GetPaymentMethods(c echo.Context) error {
	orders, joins, err := h.filtered(c)
	if err != nil {
		return errorJSON(c, "Failed to process payment methods", err)
	}
	return c.JSON(http.StatusOK, engine.BuildPaymentMethods(orders, joins))
}

func (h *Handler) GetReviewsAnalysis(c echo.Context) error {
	orders, joins, err := h.filtered(c)
	if err != nil {
		return errorJSON(c, "Failed to process reviews analysis", err)
	}
	return c.JSON(http.StatusOK, engine.BuildReviewsAnalysis(orders, joins, 2))
}

func (h *Handler) GetCustomerDemographics(c echo.Context) error {
	orders, joins, err := h.filtered(c)
	if err != nil {
		return errorJSON(c, "Failed to process customer demographics", err)
	}
	return c.JSON(http.StatusOK, engine.BuildDemographics(orders, joins))
}

func (h *Handler) GetMLMetrics(c echo.Context) error {
	orders, _, err := h.filtered(c)
	if err != nil {
		return errorJSON(c, "Failed to process ML metrics", err)
	}
	return c.JSON(http.StatusOK, engine.BuildMLMetrics(orders))
}
