package controllers

import (
	"net/http"

	"github.com/foodway/foodway-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FoodController struct {
	DB *gorm.DB
}

func NewFoodController(db *gorm.DB) *FoodController {
	return &FoodController{DB: db}
}

// ListFoods returns available foods, optionally filtered by category,
// seller, or a name search term.
func (c *FoodController) ListFoods(ctx *gin.Context) {
	query := c.DB.Model(&models.Food{}).Where("is_available = ?", true)

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if sellerID := ctx.Query("sellerID"); sellerID != "" {
		query = query.Where("seller_id = ?", sellerID)
	}
	if search := ctx.Query("search"); search != "" {
		query = query.Where("food_name LIKE ?", "%"+search+"%")
	}

	var foods []models.Food
	if err := query.Order("created_at DESC").Find(&foods).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": foods})
}

// GetFood returns one food with its store info.
func (c *FoodController) GetFood(ctx *gin.Context) {
	var food models.Food
	if err := c.DB.Where("food_id = ?", ctx.Param("foodID")).First(&food).Error; err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Food not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var store models.Seller
	c.DB.Where("seller_id = ?", food.SellerID).First(&store)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"food":  food,
			"store": store,
		},
	})
}
