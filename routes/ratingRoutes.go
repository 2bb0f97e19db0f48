package routes

import (
	"github.com/foodway/foodway-api/controllers"
	"github.com/foodway/foodway-api/middlewares"
	"github.com/gin-gonic/gin"
)

func RatingRoutes(server *gin.Engine, rating *controllers.RatingController) {
	group := server.Group("/rating")
	{
		group.POST("/rate", middlewares.RequireAuth(), rating.RateFood)
		group.GET("/food/:foodID", rating.ListFoodRatings)
	}
}
