package controllers_test

import (
	"net/http"
	"testing"

	"github.com/foodway/foodway-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStoreReportsCompleteness(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)
	_, token := seedUser(t, db, models.RoleSeller)

	rec := doRequest(t, server, http.MethodPost, "/store", token, gin.H{
		"storeName":    "Pho 24",
		"storeAddress": "56 Hai Ba Trung",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	completeness := body["completeness"].(map[string]any)
	assert.Equal(t, false, completeness["isComplete"])
	assert.ElementsMatch(t, []any{"storePhone", "categories", "menuItems"}, completeness["missingFields"])
}

func TestStoreBecomesCompleteWithMenuItem(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)
	_, token := seedUser(t, db, models.RoleSeller)

	rec := doRequest(t, server, http.MethodPost, "/store", token, gin.H{
		"storeName":    "Pho 24",
		"storeAddress": "56 Hai Ba Trung",
		"storePhone":   "0911222333",
		"categories":   []string{"Noodles"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/store/menu", token, gin.H{
		"foodName": "Pho Bo",
		"price":    55000,
		"category": "Noodles",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	completeness := decodeBody(t, rec)["completeness"].(map[string]any)
	assert.Equal(t, true, completeness["isComplete"])

	var seller models.Seller
	require.NoError(t, db.Where("store_name = ?", "Pho 24").First(&seller).Error)
	assert.True(t, seller.IsComplete)
}

func TestCreateStoreIsUpsert(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)
	_, token := seedUser(t, db, models.RoleSeller)

	require.Equal(t, http.StatusCreated, doRequest(t, server, http.MethodPost, "/store", token, gin.H{
		"storeName": "First Name",
	}).Code)
	require.Equal(t, http.StatusOK, doRequest(t, server, http.MethodPost, "/store", token, gin.H{
		"storeName": "Renamed",
	}).Code)

	var count int64
	db.Model(&models.Seller{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var seller models.Seller
	require.NoError(t, db.First(&seller).Error)
	assert.Equal(t, "Renamed", seller.StoreName)
}

func TestMenuItemDefaults(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)
	_, _, token := seedSeller(t, db)

	rec := doRequest(t, server, http.MethodPost, "/store/menu", token, gin.H{
		"foodName": "Banh Xeo",
		"price":    40000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var food models.Food
	require.NoError(t, db.Where("food_name = ?", "Banh Xeo").First(&food).Error)
	assert.Equal(t, 10, food.Stock)
	assert.True(t, food.IsAvailable)
}

func TestMenuItemOwnership(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, _ := seedSeller(t, db)
	food := seedFood(t, db, seller.SellerID, 30000, 5)

	_, _, otherToken := seedSeller(t, db)
	rec := doRequest(t, server, http.MethodPut, "/store/menu/"+food.FoodID, otherToken, gin.H{
		"price": 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, server, http.MethodDelete, "/store/menu/"+food.FoodID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBuyerCannotManageStore(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)
	_, token := seedUser(t, db, models.RoleBuyer)

	rec := doRequest(t, server, http.MethodPost, "/store", token, gin.H{"storeName": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStoreDetailAggregatesRatings(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, _ := seedSeller(t, db)
	food := seedFood(t, db, seller.SellerID, 30000, 5)

	buyer, token := seedUser(t, db, models.RoleBuyer)
	seedPaidCompletedOrder(t, db, buyer, food, 1)
	require.Equal(t, http.StatusCreated, doRequest(t, server, http.MethodPost, "/rating/rate", token, gin.H{
		"foodID": food.FoodID,
		"rating": 4,
	}).Code)

	rec := doRequest(t, server, http.MethodGet, "/store/"+seller.SellerID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(4), data["avgRating"])
	assert.Equal(t, float64(1), data["totalReviews"])
	assert.Len(t, data["foods"], 1)
}

func TestListStoresOnlyActive(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, active, _ := seedSeller(t, db)
	_, inactive, _ := seedSeller(t, db)
	require.NoError(t, db.Model(&models.Seller{}).Where("seller_id = ?", inactive.SellerID).Update("is_active", false).Error)

	rec := doRequest(t, server, http.MethodGet, "/store/list", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stores := decodeBody(t, rec)["data"].([]any)
	require.Len(t, stores, 1)
	assert.Equal(t, active.SellerID, stores[0].(map[string]any)["sellerID"])
}
