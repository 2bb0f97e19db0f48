package routes

import (
	"github.com/foodway/foodway-api/controllers"
	"github.com/foodway/foodway-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine, user *controllers.UserController) {
	group := server.Group("/user", middlewares.RequireAuth())
	{
		group.GET("/profile", user.GetProfile)
		group.PUT("/profile", user.UpdateProfile)
		group.POST("/avatar", user.UploadAvatar)

		admin := group.Group("/admin", middlewares.RequireAdmin())
		{
			admin.PUT("/role", user.AdminUpdateRole)
			admin.PUT("/update", user.AdminUpdateUser)
		}
	}
}
