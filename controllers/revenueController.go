package controllers

import (
	"net/http"
	"time"

	"github.com/foodway/foodway-api/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RevenueController struct {
	DB *gorm.DB
}

func NewRevenueController(db *gorm.DB) *RevenueController {
	return &RevenueController{DB: db}
}

type revenueAggregate struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	OrderCount       int64   `json:"orderCount"`
	UniqueOrderCount int64   `json:"uniqueOrderCount"`
}

// aggregate sums the seller's line items over paid orders created in
// [from, to). Sellers with no paid orders get zeroed aggregates, not an
// error.
func (c *RevenueController) aggregate(sellerID string, from, to time.Time) (revenueAggregate, error) {
	var agg revenueAggregate
	err := c.DB.Model(&models.OrderItem{}).
		Select("COALESCE(SUM(order_items.price * order_items.quantity), 0) AS total_revenue, "+
			"COUNT(*) AS order_count, "+
			"COUNT(DISTINCT order_items.order_ref) AS unique_order_count").
		Joins("JOIN orders ON orders.id = order_items.order_ref").
		Where("order_items.seller_id = ? AND orders.payment = ?", sellerID, true).
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Scan(&agg).Error
	return agg, err
}

func (c *RevenueController) respondAggregate(ctx *gin.Context, sellerID, label string, from, to time.Time) {
	agg, err := c.aggregate(sellerID, from, to)
	if err != nil {
		log.Error().Err(err).Msg("revenue aggregation failed")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"period":  label,
		"from":    from,
		"to":      to,
		"data":    agg,
	})
}

// DailyRevenue reports revenue since midnight.
func (c *RevenueController) DailyRevenue(ctx *gin.Context) {
	seller, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	c.respondAggregate(ctx, seller.SellerID, "daily", start, start.AddDate(0, 0, 1))
}

// MonthlyRevenue reports revenue for the current calendar month.
func (c *RevenueController) MonthlyRevenue(ctx *gin.Context) {
	seller, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	c.respondAggregate(ctx, seller.SellerID, "monthly", start, start.AddDate(0, 1, 0))
}

type revenueRangeData struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// parseRange reads yyyy-mm-dd bounds; the end date is inclusive.
func parseRange(data revenueRangeData) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", data.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", data.EndDate)
	if err != nil || end.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, end.AddDate(0, 0, 1), true
}

// RangeRevenue reports revenue over an arbitrary date range.
func (c *RevenueController) RangeRevenue(ctx *gin.Context) {
	seller, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return
	}

	var data revenueRangeData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	from, to, ok := parseRange(data)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "startDate and endDate must be yyyy-mm-dd with endDate not before startDate")
		return
	}
	c.respondAggregate(ctx, seller.SellerID, "range", from, to)
}

type revenuePoint struct {
	Day              string  `json:"day"`
	TotalRevenue     float64 `json:"totalRevenue"`
	UniqueOrderCount int64   `json:"uniqueOrderCount"`
}

// ChartRevenue returns a per-day revenue series over a date range, for
// dashboard charts. Days with no sales are absent from the series.
func (c *RevenueController) ChartRevenue(ctx *gin.Context) {
	seller, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return
	}

	var data revenueRangeData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	from, to, ok := parseRange(data)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "startDate and endDate must be yyyy-mm-dd with endDate not before startDate")
		return
	}

	var points []revenuePoint
	err := c.DB.Model(&models.OrderItem{}).
		Select("DATE(orders.created_at) AS day, "+
			"COALESCE(SUM(order_items.price * order_items.quantity), 0) AS total_revenue, "+
			"COUNT(DISTINCT order_items.order_ref) AS unique_order_count").
		Joins("JOIN orders ON orders.id = order_items.order_ref").
		Where("order_items.seller_id = ? AND orders.payment = ?", seller.SellerID, true).
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Group("DATE(orders.created_at)").
		Order("day").
		Scan(&points).Error
	if err != nil {
		log.Error().Err(err).Msg("revenue chart query failed")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": points})
}

// RevenueSummary reports order counts by status for the seller's orders,
// paid or not.
func (c *RevenueController) RevenueSummary(ctx *gin.Context) {
	seller, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return
	}

	var rows []struct {
		Status string
		Count  int64
	}
	err := c.DB.Model(&models.Order{}).
		Select("orders.status AS status, COUNT(DISTINCT orders.id) AS count").
		Joins("JOIN order_items ON order_items.order_ref = orders.id").
		Where("order_items.seller_id = ?", seller.SellerID).
		Group("orders.status").
		Scan(&rows).Error
	if err != nil {
		log.Error().Err(err).Msg("revenue summary query failed")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	counts := gin.H{
		models.OrderStatusPending:   0,
		models.OrderStatusPreparing: 0,
		models.OrderStatusShipping:  0,
		models.OrderStatusCompleted: 0,
		models.OrderStatusCancelled: 0,
	}
	var total int64
	for _, row := range rows {
		counts[row.Status] = row.Count
		total += row.Count
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":     true,
		"totalOrders": total,
		"byStatus":    counts,
	})
}
