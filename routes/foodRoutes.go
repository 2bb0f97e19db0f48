package routes

import (
	"github.com/foodway/foodway-api/controllers"
	"github.com/gin-gonic/gin"
)

func FoodRoutes(server *gin.Engine, food *controllers.FoodController) {
	group := server.Group("/food")
	{
		group.GET("/list", food.ListFoods)
		group.GET("/:foodID", food.GetFood)
	}
}
