package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gitee.com/taoJie_1/nlu-agent/global"
)

// CorsHandle 跨域配置, 允许的来源取自配置文件
func CorsHandle() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     global.Config.Cors,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// OptionsMethod 预检请求直接放行
func OptionsMethod(ctx *gin.Context) {
	if ctx.Request.Method == http.MethodOptions {
		ctx.AbortWithStatus(http.StatusNoContent)
		return
	}
	ctx.Next()
}
