package admin

import (
	"github.com/gin-gonic/gin"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/service"
)

type CatalogApi struct{}

// HandleSyncItems 手动触发菜品目录到向量库的全量同步
func (a *CatalogApi) HandleSyncItems(ctx *gin.Context) {
	count, err := service.Service.AdminServiceGroup.CatalogService.SyncItems(ctx.Request.Context())
	if err != nil {
		global.Log.Errorf("[admin] 菜品目录同步失败: %v", err)
		common.Fail(ctx, "同步失败")
		return
	}
	common.Success(ctx, map[string]int{"synced": count})
}

// HandleReloadIntents 意图目录缓存失效
func (a *CatalogApi) HandleReloadIntents(ctx *gin.Context) {
	service.Service.AdminServiceGroup.CatalogService.ReloadIntents()
	common.SuccessOk(ctx, "ok")
}
