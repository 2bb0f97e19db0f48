package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodway/foodway-api/controllers"
	"github.com/foodway/foodway-api/models"
	"github.com/foodway/foodway-api/routes"
	"github.com/foodway/foodway-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// newTestDB opens a per-test in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Seller{},
		&models.Food{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
		&models.Promotion{},
	)
	require.NoError(t, err)
	return db
}

// newTestServer wires the full route table the way main does, without the
// mailer and uploader.
func newTestServer(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	gin.SetMode(gin.TestMode)
	server := gin.New()

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, controllers.NewAuthController(db, nil))
	routes.UserRoutes(server, controllers.NewUserController(db, nil))
	routes.StoreRoutes(server, controllers.NewStoreController(db, nil))
	routes.FoodRoutes(server, controllers.NewFoodController(db))
	routes.CartRoutes(server, controllers.NewCartController(db))
	routes.OrderRoutes(server, controllers.NewOrderController(db, nil))
	routes.RatingRoutes(server, controllers.NewRatingController(db))
	routes.PromotionRoutes(server, controllers.NewPromotionController(db))
	routes.RevenueRoutes(server, controllers.NewRevenueController(db))
	return server
}

func mintToken(t *testing.T, userID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// doRequest performs a JSON request and returns the recorder.
func doRequest(t *testing.T, server *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// seedUser creates a user with a complete delivery profile and returns it
// with a valid bearer token.
func seedUser(t *testing.T, db *gorm.DB, role string) (models.User, string) {
	t.Helper()
	user := models.User{
		UserID:      utils.NewID("U"),
		UserName:    "user_" + utils.NewID("")[1:],
		Email:       utils.NewID("")[1:] + "@example.com",
		Password:    "not-a-real-hash",
		Role:        role,
		Name:        "Test User",
		DisplayName: "Tester",
		Address:     "12 Nguyen Hue, District 1",
		PhoneNumber: "0912345678",
	}
	require.NoError(t, db.Create(&user).Error)
	return user, mintToken(t, user.UserID, role)
}

// seedSeller creates a seller user with a store.
func seedSeller(t *testing.T, db *gorm.DB) (models.User, models.Seller, string) {
	t.Helper()
	user, token := seedUser(t, db, models.RoleSeller)
	seller := models.Seller{
		SellerID:     utils.NewID("SELLER"),
		UserID:       user.UserID,
		StoreName:    "Banh Mi Corner",
		StoreAddress: "34 Le Loi, District 1",
		StorePhone:   "0987654321",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&seller).Error)
	return user, seller, token
}

func seedFood(t *testing.T, db *gorm.DB, sellerID string, price float64, stock int) models.Food {
	t.Helper()
	food := models.Food{
		FoodID:      utils.NewID("F"),
		SellerID:    sellerID,
		FoodName:    "Banh Mi Thit",
		Price:       price,
		Category:    "Sandwiches",
		Stock:       stock,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&food).Error)
	return food
}

func addToCart(t *testing.T, server *gin.Engine, token, foodID string, quantity int) {
	t.Helper()
	rec := doRequest(t, server, http.MethodPost, "/cart/add", token, gin.H{
		"foodID":   foodID,
		"quantity": quantity,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

// seedPaidCompletedOrder creates a completed, paid order for the user
// containing the food.
func seedPaidCompletedOrder(t *testing.T, db *gorm.DB, user models.User, food models.Food, quantity int) models.Order {
	t.Helper()
	order := models.Order{
		OrderID:         utils.NewID("ORD"),
		UserID:          user.UserID,
		TotalPrice:      food.Price * float64(quantity),
		DeliveryAddress: user.Address,
		Phone:           user.PhoneNumber,
		Payment:         true,
		Status:          models.OrderStatusCompleted,
		Items: []models.OrderItem{{
			FoodID:   food.FoodID,
			FoodName: food.FoodName,
			SellerID: food.SellerID,
			Quantity: quantity,
			Price:    food.Price,
			Subtotal: food.Price * float64(quantity),
		}},
	}
	order.Items[0].OrderID = order.OrderID
	require.NoError(t, db.Create(&order).Error)
	return order
}
