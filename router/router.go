package router

import (
	"github.com/gin-gonic/gin"

	"gitee.com/taoJie_1/nlu-agent/controller"
	"gitee.com/taoJie_1/nlu-agent/middleware"
	"gitee.com/taoJie_1/nlu-agent/model/common"
)

func Start(ginServer *gin.Engine) {
	ginServer.Use(middleware.CorsHandle(), middleware.OptionsMethod) //全局中间件

	ginServer.NoRoute(func(ctx *gin.Context) {
		common.FailNotFound(ctx)
	})

	v1 := ginServer.Group("api/v1")
	{
		v1.POST("/classify", controller.Api.UserApiGroup.ClassifyApi.HandleClassify)
		v1.POST("/resolve", controller.Api.UserApiGroup.ResolveApi.HandleResolve)
		v1.POST("/learn", controller.Api.UserApiGroup.ResolveApi.HandleLearn)
		v1.GET("/health/classifier", controller.Api.UserApiGroup.ClassifyApi.HandleHealth)
	}

	adminGroup := v1.Group("/admin")
	{
		adminGroup.POST("/training/export", controller.Api.AdminApiGroup.TrainingApi.HandleExport)
		adminGroup.GET("/training/stats", controller.Api.AdminApiGroup.TrainingApi.HandleStats)
		adminGroup.POST("/training/import", controller.Api.AdminApiGroup.TrainingApi.HandleImport)
		adminGroup.POST("/catalog/sync-items", controller.Api.AdminApiGroup.CatalogApi.HandleSyncItems)
		adminGroup.POST("/catalog/reload-intents", controller.Api.AdminApiGroup.CatalogApi.HandleReloadIntents)
	}
}
