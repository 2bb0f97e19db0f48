package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/foodway/foodway-api/controllers"
	"github.com/foodway/foodway-api/initializers"
	"github.com/foodway/foodway-api/routes"
	"github.com/foodway/foodway-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func allowedOrigins() []string {
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:4200"}
}

func main() {
	initializers.LoadEnv()
	initializers.InitLogger()

	db, err := initializers.ConnectToDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	mailer := utils.NewMailer()
	if !mailer.Enabled() {
		log.Warn().Msg("mail credentials not set, order confirmation emails disabled")
	}

	uploader, err := utils.NewUploader(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("image storage not configured, uploads disabled")
		uploader = nil
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, controllers.NewAuthController(db, mailer))
	routes.UserRoutes(server, controllers.NewUserController(db, uploader))
	routes.StoreRoutes(server, controllers.NewStoreController(db, uploader))
	routes.FoodRoutes(server, controllers.NewFoodController(db))
	routes.CartRoutes(server, controllers.NewCartController(db))
	routes.OrderRoutes(server, controllers.NewOrderController(db, mailer))
	routes.RatingRoutes(server, controllers.NewRatingController(db))
	routes.PromotionRoutes(server, controllers.NewPromotionController(db))
	routes.RevenueRoutes(server, controllers.NewRevenueController(db))

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
