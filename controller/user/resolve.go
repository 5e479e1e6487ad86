package user

import (
	"github.com/gin-gonic/gin"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/service"
)

type ResolveApi struct{}

// HandleResolve 把槽位解析为后端实体
func (a *ResolveApi) HandleResolve(ctx *gin.Context) {
	var req common.ResolveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	result := service.Service.UserServiceGroup.ResolveService.Resolve(ctx.Request.Context(), req.Slots, &req.Context)
	common.Success(ctx, result)
}

// HandleLearn 下游确认成功后的偏好回写
func (a *ResolveApi) HandleLearn(ctx *gin.Context) {
	var req common.LearnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	err := service.Service.UserServiceGroup.PreferenceService.LearnFromSuccess(
		ctx.Request.Context(), req.UserID, req.Query, req.StoreID, req.ItemIDs)
	if err != nil {
		global.Log.Errorf("[learn] 偏好回写失败: %v", err)
		common.Fail(ctx, "偏好记录失败")
		return
	}
	common.SuccessOk(ctx, "ok")
}
