package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/foodway/foodway-api/models"
	"github.com/foodway/foodway-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StoreController struct {
	DB       *gorm.DB
	Uploader *utils.Uploader
}

func NewStoreController(db *gorm.DB, uploader *utils.Uploader) *StoreController {
	return &StoreController{DB: db, Uploader: uploader}
}

type storeData struct {
	StoreName        *string   `json:"storeName"`
	StoreDescription *string   `json:"storeDescription"`
	StoreAddress     *string   `json:"storeAddress"`
	StoreImage       *string   `json:"storeImage"`
	StorePhone       *string   `json:"storePhone"`
	StoreEmail       *string   `json:"storeEmail"`
	Categories       *[]string `json:"categories"`
	OpenTime         *string   `json:"openTime"`
	CloseTime        *string   `json:"closeTime"`
	BankName         *string   `json:"bankName"`
	BankAccount      *string   `json:"bankAccount"`
	TaxID            *string   `json:"taxID"`
	CommissionRate   *float64  `json:"commissionRate"`
	IsActive         *bool     `json:"isActive"`
}

func toJSONArray(values []string) datatypes.JSON {
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}

func (d *storeData) applyTo(store *models.Seller) {
	if d.StoreName != nil {
		store.StoreName = *d.StoreName
	}
	if d.StoreDescription != nil {
		store.StoreDescription = *d.StoreDescription
	}
	if d.StoreAddress != nil {
		store.StoreAddress = *d.StoreAddress
	}
	if d.StoreImage != nil {
		store.StoreImage = *d.StoreImage
	}
	if d.StorePhone != nil {
		store.StorePhone = *d.StorePhone
	}
	if d.StoreEmail != nil {
		store.StoreEmail = *d.StoreEmail
	}
	if d.Categories != nil {
		store.Categories = toJSONArray(*d.Categories)
	}
	if d.OpenTime != nil {
		store.OpenTime = *d.OpenTime
	}
	if d.CloseTime != nil {
		store.CloseTime = *d.CloseTime
	}
	if d.BankName != nil {
		store.BankName = *d.BankName
	}
	if d.BankAccount != nil {
		store.BankAccount = *d.BankAccount
	}
	if d.TaxID != nil {
		store.TaxID = *d.TaxID
	}
	if d.CommissionRate != nil {
		store.CommissionRate = *d.CommissionRate
	}
	if d.IsActive != nil {
		store.IsActive = *d.IsActive
	}
}

func (c *StoreController) menuCount(sellerID string) int64 {
	var count int64
	c.DB.Model(&models.Food{}).Where("seller_id = ?", sellerID).Count(&count)
	return count
}

// refreshCompleteness recomputes and persists the derived isComplete flag.
// Called after every store or menu mutation.
func (c *StoreController) refreshCompleteness(store *models.Seller) models.Completeness {
	completeness := store.CheckCompleteness(c.menuCount(store.SellerID))
	if store.IsComplete != completeness.IsComplete {
		store.IsComplete = completeness.IsComplete
		c.DB.Model(store).Update("is_complete", completeness.IsComplete)
	}
	return completeness
}

// GetMyStore returns the caller's store, its menu and the completeness
// report, or a null store when none has been created yet.
func (c *StoreController) GetMyStore(ctx *gin.Context) {
	store, err := findSellerForUser(c.DB, currentUserID(ctx))
	if err != nil {
		if isNotFound(err) {
			sendJSONResponse(ctx, http.StatusOK, gin.H{
				"success": true,
				"store":   nil,
				"message": "No store found. Please create one.",
			})
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var menuItems []models.Food
	c.DB.Where("seller_id = ?", store.SellerID).Find(&menuItems)

	completeness := c.refreshCompleteness(&store)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":      true,
		"store":        store,
		"menuItems":    menuItems,
		"menuCount":    len(menuItems),
		"completeness": completeness,
	})
}

// CreateOrUpdateStore upserts the caller's store.
func (c *StoreController) CreateOrUpdateStore(ctx *gin.Context) {
	var data storeData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	userID := currentUserID(ctx)
	store, err := findSellerForUser(c.DB, userID)
	if err != nil && !isNotFound(err) {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	created := isNotFound(err)
	if created {
		store = models.Seller{
			SellerID:   utils.NewID("SELLER"),
			UserID:     userID,
			Categories: toJSONArray([]string{}),
			IsActive:   true,
		}
	}

	data.applyTo(&store)
	completeness := store.CheckCompleteness(c.menuCount(store.SellerID))
	store.IsComplete = completeness.IsComplete

	if err := c.DB.Save(&store).Error; err != nil {
		log.Error().Err(err).Msg("error saving store")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	status := http.StatusOK
	message := "Store updated successfully"
	if created {
		status = http.StatusCreated
		message = "Store created successfully"
	}
	sendJSONResponse(ctx, status, gin.H{
		"success":      true,
		"message":      message,
		"store":        store,
		"completeness": completeness,
	})
}

// findStore looks a store up by its public sellerID.
func (c *StoreController) findStore(ctx *gin.Context, storeID string) (models.Seller, bool) {
	var store models.Seller
	if err := c.DB.Where("seller_id = ?", storeID).First(&store).Error; err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Store not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return models.Seller{}, false
	}
	return store, true
}

// assertStoreOwner enforces the string-keyed ownership rule: the caller's
// token identity must match the store's owning user.
func assertStoreOwner(ctx *gin.Context, store models.Seller) bool {
	if store.UserID != currentUserID(ctx) {
		sendErrorResponse(ctx, http.StatusForbidden, "You don't have permission to modify this store")
		return false
	}
	return true
}

// UpdateStore updates a store addressed by id, owner only.
func (c *StoreController) UpdateStore(ctx *gin.Context) {
	store, ok := c.findStore(ctx, ctx.Param("storeID"))
	if !ok {
		return
	}
	if !assertStoreOwner(ctx, store) {
		return
	}

	var data storeData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	data.applyTo(&store)
	completeness := store.CheckCompleteness(c.menuCount(store.SellerID))
	store.IsComplete = completeness.IsComplete

	if err := c.DB.Save(&store).Error; err != nil {
		log.Error().Err(err).Msg("error updating store")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":      true,
		"message":      "Store updated successfully",
		"store":        store,
		"completeness": completeness,
	})
}

// ListStores returns all active stores.
func (c *StoreController) ListStores(ctx *gin.Context) {
	var stores []models.Seller
	if err := c.DB.Where("is_active = ?", true).Find(&stores).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": stores})
}

// GetStoreDetail returns a store, its foods, and the rating summary
// aggregated across those foods.
func (c *StoreController) GetStoreDetail(ctx *gin.Context) {
	store, ok := c.findStore(ctx, ctx.Param("storeID"))
	if !ok {
		return
	}

	var foods []models.Food
	c.DB.Where("seller_id = ?", store.SellerID).Find(&foods)

	var summary struct {
		AvgRating    float64
		TotalReviews int64
	}
	c.DB.Model(&models.Rating{}).
		Select("COALESCE(AVG(ratings.rating), 0) AS avg_rating, COUNT(*) AS total_reviews").
		Joins("JOIN foods ON foods.food_id = ratings.food_id").
		Where("foods.seller_id = ?", store.SellerID).
		Scan(&summary)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"sellerInfo":   store,
			"foods":        foods,
			"avgRating":    summary.AvgRating,
			"totalReviews": summary.TotalReviews,
		},
	})
}
