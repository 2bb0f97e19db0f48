package routes

import (
	"github.com/foodway/foodway-api/controllers"
	"github.com/foodway/foodway-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PromotionRoutes(server *gin.Engine, promotion *controllers.PromotionController) {
	group := server.Group("/promotion", middlewares.RequireAuth())
	{
		group.POST("/validate", promotion.ValidatePromotion)
		group.POST("/apply", promotion.ApplyPromotion)

		seller := group.Group("", middlewares.RequireSeller())
		{
			seller.POST("", promotion.CreatePromotion)
			seller.GET("/my", promotion.MyPromotions)
			seller.PUT("/:promotionID", promotion.UpdatePromotion)
			seller.DELETE("/:promotionID", promotion.DeletePromotion)
		}
	}
}
