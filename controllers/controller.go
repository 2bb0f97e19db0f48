package controllers

import (
	"errors"
	"net/http"

	"github.com/foodway/foodway-api/middlewares"
	"github.com/foodway/foodway-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgInternalServerError = "Internal server error"
	msgInvalidInput        = "Invalid request body"
	msgSellerRequired      = "Access denied. Seller privileges required."
	msgSellerNotFound      = "Seller profile not found."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"success": false, "message": message})
}

// Identity resolved by the auth middleware. Handlers re-derive ownership
// from these, never from client-supplied ids.
func currentUserID(ctx *gin.Context) string {
	return ctx.GetString(middlewares.ContextUserID)
}

func currentRole(ctx *gin.Context) string {
	return ctx.GetString(middlewares.ContextRole)
}

func findUserByUserID(db *gorm.DB, userID string) (models.User, error) {
	var user models.User
	err := db.Where("user_id = ?", userID).First(&user).Error
	return user, err
}

// findSellerForUser resolves the caller's store. Seller-scoped endpoints
// fail with msgSellerNotFound when the seller has not set one up yet.
func findSellerForUser(db *gorm.DB, userID string) (models.Seller, error) {
	var seller models.Seller
	err := db.Where("user_id = ?", userID).First(&seller).Error
	return seller, err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// requireSellerProfile loads the caller's seller profile or writes the
// appropriate error response and returns false.
func requireSellerProfile(ctx *gin.Context, db *gorm.DB) (models.Seller, bool) {
	seller, err := findSellerForUser(db, currentUserID(ctx))
	if err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, msgSellerNotFound)
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return models.Seller{}, false
	}
	return seller, true
}
