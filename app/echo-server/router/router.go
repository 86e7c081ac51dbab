package router

import (
	"materialAdvisor/internal/middleware"
	"materialAdvisor/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	reco := api.Group("/recommendations")
	reco.POST("", handler.Recommend)
	reco.POST("/debug", handler.DebugRecommend)

	api.POST("/feedback", handler.Feedback)
}

func SetMaterialRoutes(api *echo.Group, handler *rest.MaterialHandler) {
	materials := api.Group("/materials")

	materials.GET("", handler.ListMaterials)
	materials.GET("/:id", handler.GetMaterial)
}

func SetModelAdminRoutes(api *echo.Group, handler *rest.ModelAdminHandler) {
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("/model", handler.GetModel)
	admin.POST("/model/retrain", handler.Retrain)
	admin.GET("/model/performance", handler.Performance)
	admin.GET("/feedback", handler.ListFeedback)
}

func SetMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
