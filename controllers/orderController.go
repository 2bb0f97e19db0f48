package controllers

import (
	"fmt"
	"net/http"

	"github.com/foodway/foodway-api/models"
	"github.com/foodway/foodway-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type OrderController struct {
	DB     *gorm.DB
	Mailer *utils.Mailer
}

func NewOrderController(db *gorm.DB, mailer *utils.Mailer) *OrderController {
	return &OrderController{DB: db, Mailer: mailer}
}

type checkoutError struct {
	status  int
	message string
}

func (e *checkoutError) Error() string { return e.message }

func failCheckout(status int, format string, args ...any) *checkoutError {
	return &checkoutError{status: status, message: fmt.Sprintf(format, args...)}
}

// Checkout converts the caller's cart into an order. The order row, its
// line-item snapshots, the stock decrements and the cart clear all commit
// in one transaction; any line failing rolls the whole checkout back.
func (c *OrderController) Checkout(ctx *gin.Context) {
	var data struct {
		Note string `json:"note"`
	}
	ctx.ShouldBindJSON(&data)

	userID := currentUserID(ctx)
	user, err := findUserByUserID(c.DB, userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if user.Address == "" || user.PhoneNumber == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Please complete your profile (address and phone number) before checkout")
		return
	}

	order := models.Order{
		OrderID:         utils.NewID("ORD"),
		UserID:          userID,
		DeliveryAddress: user.Address,
		Phone:           user.PhoneNumber,
		Status:          models.OrderStatusPending,
		Note:            data.Note,
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil || len(cart.Items) == 0 {
			return failCheckout(http.StatusBadRequest, "Your cart is empty")
		}

		var total float64
		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			var food models.Food
			if err := tx.Where("food_id = ?", line.FoodID).First(&food).Error; err != nil {
				return failCheckout(http.StatusBadRequest, "Food %s is no longer available", line.FoodID)
			}
			if !food.IsAvailable {
				return failCheckout(http.StatusBadRequest, "%s is currently unavailable", food.FoodName)
			}

			// Atomic conditional decrement; zero rows means not enough stock.
			res := tx.Model(&models.Food{}).
				Where("food_id = ? AND stock >= ?", food.FoodID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return failCheckout(http.StatusBadRequest, "Not enough stock for %s", food.FoodName)
			}

			subtotal := food.Price * float64(line.Quantity)
			total += subtotal
			items = append(items, models.OrderItem{
				OrderID:  order.OrderID,
				FoodID:   food.FoodID,
				FoodName: food.FoodName,
				SellerID: food.SellerID,
				Quantity: line.Quantity,
				Price:    food.Price,
				Subtotal: subtotal,
			})
		}

		order.Items = items
		order.TotalPrice = total
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if ce, ok := err.(*checkoutError); ok {
			sendErrorResponse(ctx, ce.status, ce.message)
			return
		}
		log.Error().Err(err).Msg("checkout failed")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if c.Mailer != nil && c.Mailer.Enabled() {
		go func(email, name string, order models.Order) {
			data := utils.EmailData{
				Name:    name,
				Message: "Your order has been placed and is awaiting payment.",
				OrderID: order.OrderID,
				Total:   order.TotalPrice,
			}
			if err := c.Mailer.Send(email, "Order confirmation", data, "templates/orderConfirmation.html"); err != nil {
				log.Warn().Err(err).Str("orderID", order.OrderID).Msg("order confirmation mail failed")
			}
		}(user.Email, user.Name, order)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Order placed successfully",
		"orderID":    order.OrderID,
		"totalPrice": order.TotalPrice,
	})
}

func (c *OrderController) findOrder(ctx *gin.Context, orderID string) (models.Order, bool) {
	var order models.Order
	if err := c.DB.Preload("Items").Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return models.Order{}, false
	}
	return order, true
}

// sellerOwnsLine reports whether any line of the order belongs to the
// given seller.
func sellerOwnsLine(order models.Order, sellerID string) bool {
	for _, item := range order.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

// UpdateStatus applies the status state machine. Role policy is checked
// before the transition graph so a forbidden caller always gets 403, not
// a transition error.
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	var data struct {
		OrderID string `json:"orderID" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, ok := c.findOrder(ctx, data.OrderID)
	if !ok {
		return
	}

	switch currentRole(ctx) {
	case models.RoleAdmin:
		// Unrestricted.
	case models.RoleSeller:
		seller, err := findSellerForUser(c.DB, currentUserID(ctx))
		if err != nil || !sellerOwnsLine(order, seller.SellerID) {
			sendErrorResponse(ctx, http.StatusForbidden, "You don't have permission to update this order")
			return
		}
	default:
		if order.UserID != currentUserID(ctx) || data.Status != models.OrderStatusCancelled {
			sendErrorResponse(ctx, http.StatusForbidden, "You can only cancel your own orders")
			return
		}
	}

	if !models.CanTransition(order.Status, data.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest,
			fmt.Sprintf("Cannot change order status from %s to %s", order.Status, data.Status))
		return
	}
	if data.Status == models.OrderStatusPreparing && !order.Payment {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order must be paid before preparing")
		return
	}

	if err := c.DB.Model(&order).Update("status", data.Status).Error; err != nil {
		log.Error().Err(err).Msg("error updating order status")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated to " + data.Status,
		"data":    gin.H{"orderID": order.OrderID, "status": data.Status},
	})
}

// VerifyPayment records the payment outcome. Success marks the order paid
// and advances it to preparing in one update.
func (c *OrderController) VerifyPayment(ctx *gin.Context) {
	var data struct {
		OrderID string `json:"orderID" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, ok := c.findOrder(ctx, data.OrderID)
	if !ok {
		return
	}

	if data.Status != "success" {
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"success": false,
			"message": "Payment failed or was cancelled",
			"orderID": order.OrderID,
		})
		return
	}

	if order.Status != models.OrderStatusPending {
		sendErrorResponse(ctx, http.StatusBadRequest, "Only pending orders can be verified")
		return
	}

	update := map[string]any{"payment": true, "status": models.OrderStatusPreparing}
	if err := c.DB.Model(&order).Updates(update).Error; err != nil {
		log.Error().Err(err).Msg("error verifying payment")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified. Order is being prepared.",
		"data":    gin.H{"orderID": order.OrderID, "payment": true, "status": models.OrderStatusPreparing},
	})
}

// MyOrders returns the caller's orders, newest first.
func (c *OrderController) MyOrders(ctx *gin.Context) {
	var orders []models.Order
	if err := c.DB.Preload("Items").
		Where("user_id = ?", currentUserID(ctx)).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": orders})
}

// ListOrders returns all orders for admins, and only orders containing the
// seller's items for sellers.
func (c *OrderController) ListOrders(ctx *gin.Context) {
	var orders []models.Order

	if currentRole(ctx) == models.RoleAdmin {
		if err := c.DB.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": orders})
		return
	}

	seller, ok := requireSellerProfile(ctx, c.DB)
	if !ok {
		return
	}

	if err := c.DB.Preload("Items").
		Joins("JOIN order_items ON order_items.order_ref = orders.id").
		Where("order_items.seller_id = ?", seller.SellerID).
		Group("orders.id").
		Order("orders.created_at DESC").
		Find(&orders).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": orders})
}

// OrderDetail returns one order to its owner, a seller with items in it,
// or an admin.
func (c *OrderController) OrderDetail(ctx *gin.Context) {
	order, ok := c.findOrder(ctx, ctx.Param("orderID"))
	if !ok {
		return
	}

	allowed := order.UserID == currentUserID(ctx) || currentRole(ctx) == models.RoleAdmin
	if !allowed && currentRole(ctx) == models.RoleSeller {
		if seller, err := findSellerForUser(c.DB, currentUserID(ctx)); err == nil {
			allowed = sellerOwnsLine(order, seller.SellerID)
		}
	}
	if !allowed {
		sendErrorResponse(ctx, http.StatusForbidden, "You don't have permission to view this order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": order})
}
