package controllers

import (
	"math"
	"net/http"

	"github.com/foodway/foodway-api/models"
	"github.com/foodway/foodway-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RatingController struct {
	DB *gorm.DB
}

func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{DB: db}
}

// hasCompletedOrderWithFood reports whether the user has a completed order
// containing the food. Rating is gated on this.
func hasCompletedOrderWithFood(db *gorm.DB, userID, foodID string) bool {
	var count int64
	db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_ref").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.food_id = ?",
			userID, models.OrderStatusCompleted, foodID).
		Count(&count)
	return count > 0
}

// RateFood records a rating and recomputes the food's average in the same
// transaction, so readers never observe a stale aggregate.
func (c *RatingController) RateFood(ctx *gin.Context) {
	var data models.RatingData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "rating must be between 1 and 5 and foodID is required")
		return
	}

	userID := currentUserID(ctx)
	user, err := findUserByUserID(c.DB, userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var food models.Food
	if err := c.DB.Where("food_id = ?", data.FoodID).First(&food).Error; err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Food not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if !hasCompletedOrderWithFood(c.DB, userID, data.FoodID) {
		sendErrorResponse(ctx, http.StatusForbidden, "You can only rate foods from your completed orders")
		return
	}

	var existing int64
	c.DB.Model(&models.Rating{}).Where("user_id = ? AND food_id = ?", userID, data.FoodID).Count(&existing)
	if existing > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "You have already rated this food")
		return
	}

	rating := models.Rating{
		RatingID:  utils.NewID("R"),
		UserID:    userID,
		FoodID:    data.FoodID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		UserName:  user.DisplayName,
		UserImage: user.ProfileImage,
	}
	if rating.UserName == "" {
		rating.UserName = user.Name
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&models.Rating{}).
			Select("AVG(rating) AS avg, COUNT(*) AS count").
			Where("food_id = ?", data.FoodID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Food{}).
			Where("food_id = ?", data.FoodID).
			Updates(map[string]any{
				"average_rating": math.Round(agg.Avg*10) / 10,
				"total_ratings":  agg.Count,
			}).Error
	})
	if err != nil {
		log.Error().Err(err).Msg("error saving rating")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you for your rating!",
		"data":    rating,
	})
}

// ListFoodRatings returns all ratings for a food, newest first. Public.
func (c *RatingController) ListFoodRatings(ctx *gin.Context) {
	foodID := ctx.Param("foodID")

	var food models.Food
	if err := c.DB.Where("food_id = ?", foodID).First(&food).Error; err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Food not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var ratings []models.Rating
	if err := c.DB.Where("food_id = ?", foodID).Order("created_at DESC").Find(&ratings).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":       true,
		"data":          ratings,
		"averageRating": food.AverageRating,
		"totalRatings":  food.TotalRatings,
	})
}
