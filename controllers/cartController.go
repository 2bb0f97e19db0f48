package controllers

import (
	"net/http"

	"github.com/foodway/foodway-api/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// getOrCreateCart returns the caller's cart, creating it lazily on the
// first cart operation.
func getOrCreateCart(db *gorm.DB, userID string) (models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if isNotFound(err) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	return cart, err
}

type cartItemView struct {
	FoodID    string  `json:"foodID"`
	FoodName  string  `json:"foodName"`
	FoodImage string  `json:"foodImage"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	SellerID  string  `json:"sellerID"`
}

// GetCart returns the cart with each line joined against the current
// catalog price. Totals are derived here, never stored.
func (c *CartController) GetCart(ctx *gin.Context) {
	cart, err := getOrCreateCart(c.DB, currentUserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("error loading cart")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	items := make([]cartItemView, 0, len(cart.Items))
	var total float64
	for _, item := range cart.Items {
		var food models.Food
		if err := c.DB.Where("food_id = ?", item.FoodID).First(&food).Error; err != nil {
			// Food removed from the catalog since it was added; skip it.
			continue
		}
		subtotal := food.Price * float64(item.Quantity)
		total += subtotal
		items = append(items, cartItemView{
			FoodID:    food.FoodID,
			FoodName:  food.FoodName,
			FoodImage: food.FoodImage,
			Price:     food.Price,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
			SellerID:  food.SellerID,
		})
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":    true,
		"items":      items,
		"totalPrice": total,
	})
}

// AddToCart adds a food to the cart or merges quantities when the food is
// already in it.
func (c *CartController) AddToCart(ctx *gin.Context) {
	var data models.CartUpdateData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	quantity := data.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
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
	if !food.IsAvailable {
		sendErrorResponse(ctx, http.StatusBadRequest, "This item is currently unavailable")
		return
	}

	cart, err := getOrCreateCart(c.DB, currentUserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("error loading cart")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var existing models.CartItem
	err = c.DB.Where("cart_id = ? AND food_id = ?", cart.ID, data.FoodID).First(&existing).Error
	switch {
	case err == nil:
		err = c.DB.Model(&existing).Update("quantity", existing.Quantity+quantity).Error
	case isNotFound(err):
		err = c.DB.Create(&models.CartItem{CartID: cart.ID, FoodID: data.FoodID, Quantity: quantity}).Error
	}
	if err != nil {
		log.Error().Err(err).Msg("error adding to cart")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Item added to cart"})
}

// RemoveFromCart decrements a line's quantity, or removes the line when
// quantity is omitted or covers the rest.
func (c *CartController) RemoveFromCart(ctx *gin.Context) {
	var data models.CartUpdateData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	cart, err := getOrCreateCart(c.DB, currentUserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("error loading cart")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var item models.CartItem
	if err := c.DB.Where("cart_id = ? AND food_id = ?", cart.ID, data.FoodID).First(&item).Error; err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Item not in cart")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if data.Quantity > 0 && data.Quantity < item.Quantity {
		err = c.DB.Model(&item).Update("quantity", item.Quantity-data.Quantity).Error
	} else {
		err = c.DB.Delete(&item).Error
	}
	if err != nil {
		log.Error().Err(err).Msg("error removing from cart")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Item removed from cart"})
}
