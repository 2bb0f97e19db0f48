package routes

import (
	"github.com/foodway/foodway-api/controllers"
	"github.com/foodway/foodway-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, order *controllers.OrderController) {
	group := server.Group("/order", middlewares.RequireAuth())
	{
		group.POST("/checkout", order.Checkout)
		group.POST("/status", order.UpdateStatus)
		group.POST("/verify", middlewares.RequireAdmin(), order.VerifyPayment)
		group.GET("/my", order.MyOrders)
		group.GET("/list", middlewares.RequireSeller(), order.ListOrders)
		group.GET("/detail/:orderID", order.OrderDetail)
	}
}
