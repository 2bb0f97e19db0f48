package routes

import (
	"github.com/foodway/foodway-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, auth *controllers.AuthController) {
	group := server.Group("/auth")
	{
		group.POST("/register", auth.Register)
		group.POST("/login", auth.Login)
	}
}
