package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/foodway/foodway-api/models"
	"github.com/foodway/foodway-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PromotionController struct {
	DB *gorm.DB
}

func NewPromotionController(db *gorm.DB) *PromotionController {
	return &PromotionController{DB: db}
}

type promotionData struct {
	PromotionTitle       string   `json:"promotionTitle" binding:"required"`
	DiscountCode         string   `json:"discountCode" binding:"required"`
	DiscountType         string   `json:"discountType" binding:"required"`
	DiscountValue        float64  `json:"discountValue" binding:"required,gt=0"`
	MinOrderAmount       float64  `json:"minOrderAmount"`
	MaxUsage             *int     `json:"maxUsage"`
	ExpiryDate           string   `json:"expiryDate" binding:"required"`
	Description          string   `json:"description"`
	ApplicableCategories []string `json:"applicableCategories"`
	MaxDiscountAmount    *float64 `json:"maxDiscountAmount"`
}

func parseExpiry(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreatePromotion registers a new discount code for the caller's store.
func (c *PromotionController) CreatePromotion(ctx *gin.Context) {
	seller, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return
	}

	var data promotionData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if data.DiscountType != models.DiscountTypePercentage && data.DiscountType != models.DiscountTypeFixed {
		sendErrorResponse(ctx, http.StatusBadRequest, "discountType must be percentage or fixed")
		return
	}
	if data.DiscountType == models.DiscountTypePercentage && data.DiscountValue > 100 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Percentage discount cannot exceed 100")
		return
	}

	expiry, ok := parseExpiry(data.ExpiryDate)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "expiryDate must be an RFC3339 timestamp or yyyy-mm-dd")
		return
	}
	if expiry.Before(time.Now()) {
		sendErrorResponse(ctx, http.StatusBadRequest, "expiryDate must be in the future")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(data.DiscountCode))
	var count int64
	c.DB.Model(&models.Promotion{}).Where("discount_code = ?", code).Count(&count)
	if count > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Discount code already exists")
		return
	}

	promotion := models.Promotion{
		PromotionID:          utils.NewID("PROMO"),
		SellerID:             seller.SellerID,
		PromotionTitle:       data.PromotionTitle,
		DiscountCode:         code,
		DiscountType:         data.DiscountType,
		DiscountValue:        data.DiscountValue,
		MinOrderAmount:       data.MinOrderAmount,
		MaxUsage:             data.MaxUsage,
		ExpiryDate:           expiry,
		Status:               models.PromotionStatusActive,
		Description:          data.Description,
		ApplicableCategories: toJSONArray(data.ApplicableCategories),
		MaxDiscountAmount:    data.MaxDiscountAmount,
	}

	if err := c.DB.Create(&promotion).Error; err != nil {
		log.Error().Err(err).Msg("error creating promotion")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"success": true,
		"message": "Promotion created successfully",
		"data":    promotion,
	})
}

// findOwnedPromotion loads a promotion and checks the caller's store owns it.
func (c *PromotionController) findOwnedPromotion(ctx *gin.Context, promotionID string) (models.Promotion, bool) {
	seller, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return models.Promotion{}, false
	}

	var promotion models.Promotion
	if err := c.DB.Where("promotion_id = ?", promotionID).First(&promotion).Error; err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Promotion not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return models.Promotion{}, false
	}

	if promotion.SellerID != seller.SellerID && currentRole(ctx) != models.RoleAdmin {
		sendErrorResponse(ctx, http.StatusForbidden, "You don't have permission to modify this promotion")
		return models.Promotion{}, false
	}
	return promotion, true
}

type promotionUpdateData struct {
	PromotionTitle    *string  `json:"promotionTitle"`
	DiscountValue     *float64 `json:"discountValue"`
	MinOrderAmount    *float64 `json:"minOrderAmount"`
	MaxUsage          *int     `json:"maxUsage"`
	ExpiryDate        *string  `json:"expiryDate"`
	Status            *string  `json:"status"`
	Description       *string  `json:"description"`
	MaxDiscountAmount *float64 `json:"maxDiscountAmount"`
}

// UpdatePromotion edits an owned promotion. The code and type are fixed
// after creation.
func (c *PromotionController) UpdatePromotion(ctx *gin.Context) {
	promotion, ok := c.findOwnedPromotion(ctx, ctx.Param("promotionID"))
	if !ok {
		return
	}

	var data promotionUpdateData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if data.PromotionTitle != nil {
		promotion.PromotionTitle = *data.PromotionTitle
	}
	if data.DiscountValue != nil {
		if *data.DiscountValue <= 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "discountValue must be greater than zero")
			return
		}
		if promotion.DiscountType == models.DiscountTypePercentage && *data.DiscountValue > 100 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Percentage discount cannot exceed 100")
			return
		}
		promotion.DiscountValue = *data.DiscountValue
	}
	if data.MinOrderAmount != nil {
		promotion.MinOrderAmount = *data.MinOrderAmount
	}
	if data.MaxUsage != nil {
		promotion.MaxUsage = data.MaxUsage
	}
	if data.ExpiryDate != nil {
		expiry, ok := parseExpiry(*data.ExpiryDate)
		if !ok {
			sendErrorResponse(ctx, http.StatusBadRequest, "expiryDate must be an RFC3339 timestamp or yyyy-mm-dd")
			return
		}
		promotion.ExpiryDate = expiry
		if expiry.After(time.Now()) && promotion.Status == models.PromotionStatusExpired {
			promotion.Status = models.PromotionStatusActive
		}
	}
	if data.Status != nil {
		switch *data.Status {
		case models.PromotionStatusActive, models.PromotionStatusPaused:
			promotion.Status = *data.Status
		default:
			sendErrorResponse(ctx, http.StatusBadRequest, "status must be active or paused")
			return
		}
	}
	if data.Description != nil {
		promotion.Description = *data.Description
	}
	if data.MaxDiscountAmount != nil {
		promotion.MaxDiscountAmount = data.MaxDiscountAmount
	}

	if err := c.DB.Save(&promotion).Error; err != nil {
		log.Error().Err(err).Msg("error updating promotion")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"message": "Promotion updated successfully",
		"data":    promotion,
	})
}

// DeletePromotion removes an owned promotion.
func (c *PromotionController) DeletePromotion(ctx *gin.Context) {
	promotion, ok := c.findOwnedPromotion(ctx, ctx.Param("promotionID"))
	if !ok {
		return
	}

	if err := c.DB.Delete(&promotion).Error; err != nil {
		log.Error().Err(err).Msg("error deleting promotion")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Promotion deleted successfully"})
}

// MyPromotions lists the caller's promotions.
func (c *PromotionController) MyPromotions(ctx *gin.Context) {
	seller, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return
	}

	var promotions []models.Promotion
	if err := c.DB.Where("seller_id = ?", seller.SellerID).
		Order("created_at DESC").Find(&promotions).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": promotions})
}

type promotionCheckData struct {
	DiscountCode string  `json:"discountCode" binding:"required"`
	OrderAmount  float64 `json:"orderAmount" binding:"required,gt=0"`
}

// checkPromotion runs the eligibility checks in their fixed order:
// not found, usage limit, minimum order amount, expiry. The first failing
// check wins.
func (c *PromotionController) checkPromotion(ctx *gin.Context, data promotionCheckData) (models.Promotion, bool) {
	code := strings.ToUpper(strings.TrimSpace(data.DiscountCode))

	var promotion models.Promotion
	if err := c.DB.Where("discount_code = ?", code).First(&promotion).Error; err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Invalid discount code")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return models.Promotion{}, false
	}

	if promotion.MaxUsage != nil && promotion.UsageCount >= *promotion.MaxUsage {
		sendErrorResponse(ctx, http.StatusBadRequest, "This discount code has reached its usage limit")
		return models.Promotion{}, false
	}

	if data.OrderAmount < promotion.MinOrderAmount {
		sendErrorResponse(ctx, http.StatusBadRequest,
			fmt.Sprintf("Minimum order amount of %.0f required for this code", promotion.MinOrderAmount))
		return models.Promotion{}, false
	}

	if promotion.ExpiryDate.Before(time.Now()) || promotion.Status != models.PromotionStatusActive {
		sendErrorResponse(ctx, http.StatusBadRequest, "This discount code has expired")
		return models.Promotion{}, false
	}

	return promotion, true
}

// ValidatePromotion reports the discount a code would yield without
// consuming a use.
func (c *PromotionController) ValidatePromotion(ctx *gin.Context) {
	var data promotionCheckData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	promotion, ok := c.checkPromotion(ctx, data)
	if !ok {
		return
	}

	discount, final := promotion.DiscountFor(data.OrderAmount)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":        true,
		"message":        "Discount code is valid",
		"discountAmount": discount,
		"finalAmount":    final,
		"promotion":      promotion,
	})
}

// ApplyPromotion consumes one use of a code and returns the discounted
// amount. The usage increment is conditional so concurrent applies can
// never push the counter past the cap.
func (c *PromotionController) ApplyPromotion(ctx *gin.Context) {
	var data promotionCheckData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	promotion, ok := c.checkPromotion(ctx, data)
	if !ok {
		return
	}

	res := c.DB.Model(&models.Promotion{}).
		Where("promotion_id = ? AND (max_usage IS NULL OR usage_count < max_usage)", promotion.PromotionID).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		log.Error().Err(res.Error).Msg("error applying promotion")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "This discount code has reached its usage limit")
		return
	}

	discount, final := promotion.DiscountFor(data.OrderAmount)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":        true,
		"message":        "Discount applied",
		"discountAmount": discount,
		"finalAmount":    final,
	})
}
