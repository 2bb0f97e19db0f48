package controllers_test

import (
	"net/http"
	"testing"

	"github.com/foodway/foodway-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutComputesTotalFromCatalog(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, _ := seedSeller(t, db)
	food := seedFood(t, db, seller.SellerID, 50000, 10)
	buyer, token := seedUser(t, db, models.RoleBuyer)

	addToCart(t, server, token, food.FoodID, 2)

	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(100000), body["totalPrice"])

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("user_id = ?", buyer.UserID).First(&order).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.Payment)
	assert.Equal(t, buyer.Address, order.DeliveryAddress)
	assert.Equal(t, buyer.PhoneNumber, order.Phone)
	require.Len(t, order.Items, 1)
	assert.Equal(t, food.Price, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, float64(100000), order.Items[0].Subtotal)
	assert.Equal(t, seller.SellerID, order.Items[0].SellerID)

	// Stock decremented and cart cleared.
	var updated models.Food
	require.NoError(t, db.Where("food_id = ?", food.FoodID).First(&updated).Error)
	assert.Equal(t, 8, updated.Stock)

	var remaining int64
	db.Model(&models.CartItem{}).Count(&remaining)
	assert.Zero(t, remaining)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, token := seedUser(t, db, models.RoleBuyer)
	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutRequiresCompleteProfile(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, _ := seedSeller(t, db)
	food := seedFood(t, db, seller.SellerID, 30000, 5)

	buyer, token := seedUser(t, db, models.RoleBuyer)
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", buyer.UserID).Update("address", "").Error)

	addToCart(t, server, token, food.FoodID, 1)

	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, _ := seedSeller(t, db)
	cheap := seedFood(t, db, seller.SellerID, 20000, 10)
	scarce := seedFood(t, db, seller.SellerID, 40000, 1)

	_, token := seedUser(t, db, models.RoleBuyer)
	addToCart(t, server, token, cheap.FoodID, 2)
	addToCart(t, server, token, scarce.FoodID, 3)

	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Nothing committed: no order, stock untouched, cart intact.
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)

	var after models.Food
	require.NoError(t, db.Where("food_id = ?", cheap.FoodID).First(&after).Error)
	assert.Equal(t, 10, after.Stock)

	var cartLines int64
	db.Model(&models.CartItem{}).Count(&cartLines)
	assert.Equal(t, int64(2), cartLines)
}

func TestCheckoutFailsWhenCartedFoodBecomesUnavailable(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, _ := seedSeller(t, db)
	staple := seedFood(t, db, seller.SellerID, 20000, 10)
	pulled := seedFood(t, db, seller.SellerID, 35000, 10)

	_, token := seedUser(t, db, models.RoleBuyer)
	addToCart(t, server, token, staple.FoodID, 1)
	addToCart(t, server, token, pulled.FoodID, 1)

	// The seller takes the item off sale after it is already in the cart.
	require.NoError(t, db.Model(&models.Food{}).Where("food_id = ?", pulled.FoodID).Update("is_available", false).Error)

	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)

	var after models.Food
	require.NoError(t, db.Where("food_id = ?", staple.FoodID).First(&after).Error)
	assert.Equal(t, 10, after.Stock)

	var cartLines int64
	db.Model(&models.CartItem{}).Count(&cartLines)
	assert.Equal(t, int64(2), cartLines)
}

func TestCheckoutFailsWhenCartedFoodIsDeleted(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, _ := seedSeller(t, db)
	staple := seedFood(t, db, seller.SellerID, 20000, 10)
	removed := seedFood(t, db, seller.SellerID, 35000, 10)

	_, token := seedUser(t, db, models.RoleBuyer)
	addToCart(t, server, token, staple.FoodID, 2)
	addToCart(t, server, token, removed.FoodID, 1)

	require.NoError(t, db.Where("food_id = ?", removed.FoodID).Delete(&models.Food{}).Error)

	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)

	var after models.Food
	require.NoError(t, db.Where("food_id = ?", staple.FoodID).First(&after).Error)
	assert.Equal(t, 10, after.Stock)

	var cartLines int64
	db.Model(&models.CartItem{}).Count(&cartLines)
	assert.Equal(t, int64(2), cartLines)
}

func TestBuyerCanOnlyCancelOwnOrders(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, _ := seedSeller(t, db)
	food := seedFood(t, db, seller.SellerID, 25000, 10)

	_, token := seedUser(t, db, models.RoleBuyer)
	addToCart(t, server, token, food.FoodID, 1)
	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := decodeBody(t, rec)["orderID"].(string)

	// Another buyer cannot cancel it.
	_, otherToken := seedUser(t, db, models.RoleBuyer)
	rec = doRequest(t, server, http.MethodPost, "/order/status", otherToken, gin.H{
		"orderID": orderID, "status": models.OrderStatusCancelled,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The owner cannot advance it, only cancel.
	rec = doRequest(t, server, http.MethodPost, "/order/status", token, gin.H{
		"orderID": orderID, "status": models.OrderStatusShipping,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/order/status", token, gin.H{
		"orderID": orderID, "status": models.OrderStatusCancelled,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Cancelled is terminal.
	rec = doRequest(t, server, http.MethodPost, "/order/status", token, gin.H{
		"orderID": orderID, "status": models.OrderStatusCancelled,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreparingRequiresPayment(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, sellerToken := seedSeller(t, db)
	food := seedFood(t, db, seller.SellerID, 25000, 10)

	_, token := seedUser(t, db, models.RoleBuyer)
	addToCart(t, server, token, food.FoodID, 1)
	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := decodeBody(t, rec)["orderID"].(string)

	rec = doRequest(t, server, http.MethodPost, "/order/status", sellerToken, gin.H{
		"orderID": orderID, "status": models.OrderStatusPreparing,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyPaymentAdvancesToPreparing(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, sellerToken := seedSeller(t, db)
	food := seedFood(t, db, seller.SellerID, 25000, 10)

	_, token := seedUser(t, db, models.RoleBuyer)
	addToCart(t, server, token, food.FoodID, 1)
	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := decodeBody(t, rec)["orderID"].(string)

	// Only admins may verify.
	rec = doRequest(t, server, http.MethodPost, "/order/verify", token, gin.H{
		"orderID": orderID, "status": "success",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, adminToken := seedUser(t, db, models.RoleAdmin)
	rec = doRequest(t, server, http.MethodPost, "/order/verify", adminToken, gin.H{
		"orderID": orderID, "status": "success",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var order models.Order
	require.NoError(t, db.Where("order_id = ?", orderID).First(&order).Error)
	assert.True(t, order.Payment)
	assert.Equal(t, models.OrderStatusPreparing, order.Status)

	// Seller owning the line can now walk it to completed.
	for _, next := range []string{models.OrderStatusShipping, models.OrderStatusCompleted} {
		rec = doRequest(t, server, http.MethodPost, "/order/status", sellerToken, gin.H{
			"orderID": orderID, "status": next,
		})
		require.Equal(t, http.StatusOK, rec.Code, "transition to %s", next)
	}

	// Completed is terminal.
	rec = doRequest(t, server, http.MethodPost, "/order/status", sellerToken, gin.H{
		"orderID": orderID, "status": models.OrderStatusPending,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSellerWithoutLineItemCannotTouchOrder(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, _ := seedSeller(t, db)
	food := seedFood(t, db, seller.SellerID, 25000, 10)

	_, _, strangerToken := seedSeller(t, db)

	_, token := seedUser(t, db, models.RoleBuyer)
	addToCart(t, server, token, food.FoodID, 1)
	rec := doRequest(t, server, http.MethodPost, "/order/checkout", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := decodeBody(t, rec)["orderID"].(string)

	rec = doRequest(t, server, http.MethodPost, "/order/status", strangerToken, gin.H{
		"orderID": orderID, "status": models.OrderStatusCancelled,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrderListScoping(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, sellerA, tokenA := seedSeller(t, db)
	_, sellerB, tokenB := seedSeller(t, db)
	foodA := seedFood(t, db, sellerA.SellerID, 25000, 10)
	foodB := seedFood(t, db, sellerB.SellerID, 30000, 10)

	buyer, _ := seedUser(t, db, models.RoleBuyer)
	seedPaidCompletedOrder(t, db, buyer, foodA, 1)
	seedPaidCompletedOrder(t, db, buyer, foodB, 1)

	recA := doRequest(t, server, http.MethodGet, "/order/list", tokenA, nil)
	require.Equal(t, http.StatusOK, recA.Code)
	assert.Len(t, decodeBody(t, recA)["data"], 1)

	recB := doRequest(t, server, http.MethodGet, "/order/list", tokenB, nil)
	require.Equal(t, http.StatusOK, recB.Code)
	assert.Len(t, decodeBody(t, recB)["data"], 1)

	_, adminToken := seedUser(t, db, models.RoleAdmin)
	recAdmin := doRequest(t, server, http.MethodGet, "/order/list", adminToken, nil)
	require.Equal(t, http.StatusOK, recAdmin.Code)
	assert.Len(t, decodeBody(t, recAdmin)["data"], 2)
}

func TestOrderDetailPermissions(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	_, seller, sellerToken := seedSeller(t, db)
	food := seedFood(t, db, seller.SellerID, 25000, 10)

	buyer, buyerToken := seedUser(t, db, models.RoleBuyer)
	order := seedPaidCompletedOrder(t, db, buyer, food, 1)

	assert.Equal(t, http.StatusOK, doRequest(t, server, http.MethodGet, "/order/detail/"+order.OrderID, buyerToken, nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(t, server, http.MethodGet, "/order/detail/"+order.OrderID, sellerToken, nil).Code)

	_, strangerToken := seedUser(t, db, models.RoleBuyer)
	assert.Equal(t, http.StatusForbidden, doRequest(t, server, http.MethodGet, "/order/detail/"+order.OrderID, strangerToken, nil).Code)
}
