package routes

import (
	"github.com/foodway/foodway-api/controllers"
	"github.com/foodway/foodway-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, cart *controllers.CartController) {
	group := server.Group("/cart", middlewares.RequireAuth())
	{
		group.GET("", cart.GetCart)
		group.POST("/add", cart.AddToCart)
		group.POST("/remove", cart.RemoveFromCart)
	}
}
