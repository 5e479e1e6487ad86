package admin

import (
	"github.com/gin-gonic/gin"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/dto"
	"gitee.com/taoJie_1/nlu-agent/service"
)

type TrainingApi struct{}

// HandleExport 导出训练数据
func (a *TrainingApi) HandleExport(ctx *gin.Context) {
	result, err := service.Service.AdminServiceGroup.TrainingService.Export(ctx.Request.Context())
	if err != nil {
		global.Log.Errorf("[admin] 导出训练数据失败: %v", err)
		common.Fail(ctx, "导出失败")
		return
	}
	common.Success(ctx, result)
}

// HandleStats 训练语料统计
func (a *TrainingApi) HandleStats(ctx *gin.Context) {
	stats, err := service.Service.AdminServiceGroup.TrainingService.Stats()
	if err != nil {
		global.Log.Errorf("[admin] 统计训练语料失败: %v", err)
		common.Fail(ctx, "统计失败")
		return
	}
	common.Success(ctx, stats)
}

// HandleImport 批量导入标注样本
func (a *TrainingApi) HandleImport(ctx *gin.Context) {
	var req dto.ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	count, err := service.Service.AdminServiceGroup.TrainingService.Import(&req)
	if err != nil {
		global.Log.Errorf("[admin] 导入训练样本失败: %v", err)
		common.Fail(ctx, "导入失败")
		return
	}
	common.Success(ctx, map[string]int{"imported": count})
}
