package routes

import (
	"github.com/foodway/foodway-api/controllers"
	"github.com/foodway/foodway-api/middlewares"
	"github.com/gin-gonic/gin"
)

func StoreRoutes(server *gin.Engine, store *controllers.StoreController) {
	group := server.Group("/store")
	{
		// Public browsing. "list" and "my" are registered before ":storeID"
		// so gin does not treat them as ids.
		group.GET("/list", store.ListStores)

		seller := group.Group("", middlewares.RequireAuth(), middlewares.RequireSeller())
		{
			seller.GET("/my", store.GetMyStore)
			seller.POST("", store.CreateOrUpdateStore)
			seller.PUT("/:storeID", store.UpdateStore)
			seller.POST("/menu", store.AddMenuItem)
			seller.POST("/menu/image", store.UploadMenuImage)
			seller.PUT("/menu/:foodID", store.UpdateMenuItem)
			seller.DELETE("/menu/:foodID", store.DeleteMenuItem)
		}

		group.GET("/:storeID", store.GetStoreDetail)
		group.GET("/:storeID/menu", store.GetStoreMenu)
	}
}
