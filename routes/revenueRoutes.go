package routes

import (
	"github.com/foodway/foodway-api/controllers"
	"github.com/foodway/foodway-api/middlewares"
	"github.com/gin-gonic/gin"
)

func RevenueRoutes(server *gin.Engine, revenue *controllers.RevenueController) {
	group := server.Group("/revenue", middlewares.RequireAuth(), middlewares.RequireSeller())
	{
		group.GET("/daily", revenue.DailyRevenue)
		group.GET("/monthly", revenue.MonthlyRevenue)
		group.POST("/range", revenue.RangeRevenue)
		group.POST("/chart", revenue.ChartRevenue)
		group.GET("/summary", revenue.RevenueSummary)
	}
}
