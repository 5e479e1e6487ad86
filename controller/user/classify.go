package user

import (
	"github.com/gin-gonic/gin"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/service"
)

type ClassifyApi struct{}

// HandleClassify 消息分类入口, 同步返回完整的分类结果
func (a *ClassifyApi) HandleClassify(ctx *gin.Context) {
	var req common.ClassificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	result, err := service.Service.UserServiceGroup.PipelineService.Process(ctx.Request.Context(), &req)
	if err != nil {
		global.Log.Warnf("[classify] 请求被拒绝: %v", err)
		common.Fail(ctx, err.Error())
		return
	}
	common.Success(ctx, result)
}

// HandleHealth 分类端点健康状态, 供运维观测主备切换
func (a *ClassifyApi) HandleHealth(ctx *gin.Context) {
	common.Success(ctx, service.Service.UserServiceGroup.HealthService.State())
}
