package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Foodway API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/register" - Create user account
- POST "/auth/login" - Access user account

USER
- GET "/user/profile" - Get own profile
- PUT "/user/profile" - Update own profile
- POST "/user/avatar" - Upload profile avatar
- PUT "/user/admin/role" - Update a user's role (admin)
- PUT "/user/admin/update" - Update a user's profile (admin)

STORE
- GET "/store/my" - Get own store
- POST "/store" - Create or update own store
- PUT "/store/:storeID" - Update store by id (owner)
- GET "/store/list" - List active stores
- GET "/store/:storeID" - Get store detail
- GET "/store/:storeID/menu" - Get store menu
- POST "/store/menu" - Add menu item (seller)
- PUT "/store/menu/:foodID" - Update menu item (seller)
- DELETE "/store/menu/:foodID" - Delete menu item (seller)
- POST "/store/menu/image" - Upload menu item image (seller)

FOOD
- GET "/food/list" - List available foods
- GET "/food/:foodID" - Get food detail

CART
- GET "/cart" - Get own cart
- POST "/cart/add" - Add item to cart
- POST "/cart/remove" - Remove item from cart

ORDER
- POST "/order/checkout" - Convert cart into an order
- POST "/order/status" - Update order status
- POST "/order/verify" - Verify payment (admin)
- GET "/order/my" - Get own orders
- GET "/order/list" - List orders (admin/seller)
- GET "/order/detail/:orderID" - Get order detail

RATING
- POST "/rating/rate" - Rate a food from a completed order
- GET "/rating/food/:foodID" - List ratings for a food

PROMOTION
- POST "/promotion" - Create promotion (seller)
- PUT "/promotion/:promotionID" - Update promotion (seller)
- DELETE "/promotion/:promotionID" - Delete promotion (seller)
- GET "/promotion/my" - List own promotions (seller)
- POST "/promotion/validate" - Validate a discount code
- POST "/promotion/apply" - Apply a discount code

REVENUE (seller)
- GET "/revenue/daily" - Revenue since midnight
- GET "/revenue/monthly" - Revenue this month
- POST "/revenue/range" - Revenue over a date range
- POST "/revenue/chart" - Per-day revenue series
- GET "/revenue/summary" - Order counts by status`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
