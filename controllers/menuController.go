package controllers

import (
	"net/http"
	"strings"

	"github.com/foodway/foodway-api/models"
	"github.com/foodway/foodway-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type menuItemData struct {
	FoodName    string  `json:"foodName" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	FoodImage   string  `json:"foodImage"`
	Category    string  `json:"category"`
	Stock       *int    `json:"stock"`
	IsAvailable *bool   `json:"isAvailable"`
}

type menuItemUpdateData struct {
	FoodName    *string  `json:"foodName"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	FoodImage   *string  `json:"foodImage"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	IsAvailable *bool    `json:"isAvailable"`
}

// AddMenuItem creates a food under the caller's store.
func (c *StoreController) AddMenuItem(ctx *gin.Context) {
	store, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return
	}

	var data menuItemData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	stock := 10
	if data.Stock != nil {
		if *data.Stock < 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "stock cannot be negative")
			return
		}
		stock = *data.Stock
	}
	available := true
	if data.IsAvailable != nil {
		available = *data.IsAvailable
	}

	food := models.Food{
		FoodID:      utils.NewID("F"),
		SellerID:    store.SellerID,
		FoodName:    data.FoodName,
		Description: data.Description,
		Price:       data.Price,
		FoodImage:   data.FoodImage,
		Category:    data.Category,
		Stock:       stock,
		IsAvailable: available,
	}

	if err := c.DB.Create(&food).Error; err != nil {
		log.Error().Err(err).Msg("error creating menu item")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	completeness := c.refreshCompleteness(&store)
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Menu item added successfully",
		"data":         food,
		"completeness": completeness,
	})
}

// findOwnedFood loads a food and checks it belongs to the caller's store.
func (c *StoreController) findOwnedFood(ctx *gin.Context, foodID string) (models.Food, models.Seller, bool) {
	store, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return models.Food{}, models.Seller{}, false
	}

	var food models.Food
	if err := c.DB.Where("food_id = ?", foodID).First(&food).Error; err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Menu item not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return models.Food{}, models.Seller{}, false
	}

	if food.SellerID != store.SellerID && currentRole(ctx) != models.RoleAdmin {
		sendErrorResponse(ctx, http.StatusForbidden, "You don't have permission to modify this menu item")
		return models.Food{}, models.Seller{}, false
	}
	return food, store, true
}

// UpdateMenuItem updates an owned food via the allow-listed fields.
func (c *StoreController) UpdateMenuItem(ctx *gin.Context) {
	food, _, ok := c.findOwnedFood(ctx, ctx.Param("foodID"))
	if !ok {
		return
	}

	var data menuItemUpdateData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	update := map[string]any{}
	if data.FoodName != nil && *data.FoodName != "" {
		update["food_name"] = *data.FoodName
	}
	if data.Description != nil {
		update["description"] = *data.Description
	}
	if data.Price != nil {
		if *data.Price <= 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "price must be greater than zero")
			return
		}
		update["price"] = *data.Price
	}
	if data.FoodImage != nil {
		update["food_image"] = *data.FoodImage
	}
	if data.Category != nil {
		update["category"] = *data.Category
	}
	if data.Stock != nil {
		if *data.Stock < 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "stock cannot be negative")
			return
		}
		update["stock"] = *data.Stock
	}
	if data.IsAvailable != nil {
		update["is_available"] = *data.IsAvailable
	}

	if len(update) > 0 {
		if err := c.DB.Model(&food).Updates(update).Error; err != nil {
			log.Error().Err(err).Msg("error updating menu item")
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"message": "Menu item updated successfully",
		"data":    food,
	})
}

// DeleteMenuItem removes an owned food. The stored image is cleaned up
// best-effort; a failed delete never blocks the removal.
func (c *StoreController) DeleteMenuItem(ctx *gin.Context) {
	food, store, ok := c.findOwnedFood(ctx, ctx.Param("foodID"))
	if !ok {
		return
	}

	if err := c.DB.Delete(&food).Error; err != nil {
		log.Error().Err(err).Msg("error deleting menu item")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if c.Uploader != nil && food.FoodImage != "" {
		if idx := strings.Index(food.FoodImage, "amazonaws.com/"); idx != -1 {
			c.Uploader.Delete(ctx.Request.Context(), food.FoodImage[idx+len("amazonaws.com/"):])
		}
	}

	completeness := c.refreshCompleteness(&store)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":      true,
		"message":      "Menu item deleted successfully",
		"completeness": completeness,
	})
}

// UploadMenuImage stores a food image and returns its URL.
func (c *StoreController) UploadMenuImage(ctx *gin.Context) {
	if _, ok := requireSellerProfile(ctx, c.DB); !ok {
		return
	}
	if c.Uploader == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}

	url, err := c.Uploader.Upload(ctx.Request.Context(), "foods", file)
	if err != nil {
		log.Error().Err(err).Msg("menu image upload failed")
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error uploading image")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":  true,
		"message":  "Image uploaded successfully",
		"imageUrl": url,
	})
}

// GetStoreMenu returns the menu of any store, public.
func (c *StoreController) GetStoreMenu(ctx *gin.Context) {
	store, ok := c.findStore(ctx, ctx.Param("storeID"))
	if !ok {
		return
	}

	var foods []models.Food
	if err := c.DB.Where("seller_id = ?", store.SellerID).Find(&foods).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": foods})
}
