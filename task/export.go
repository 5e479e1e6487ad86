package task

import (
	"context"
	"time"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/service"
)

// TrainingExporter 每日训练数据导出
func (m *Manager) TrainingExporter() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := service.Service.AdminServiceGroup.TrainingService.Export(ctx)
	if err != nil {
		return err
	}
	global.Log.Infof("[task] 定时导出完成: intent=%d entity=%d tone=%d", result.IntentCount, result.EntityCount, result.ToneCount)
	return nil
}
