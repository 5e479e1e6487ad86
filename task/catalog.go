package task

import (
	"context"
	"sync"
	"time"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/service"
)

var (
	catalogSyncTimer *time.Timer
	catalogSyncMutex sync.Mutex
)

// CatalogSyncer 全量同步菜品目录到向量库, 并刷新意图目录缓存
func (m *Manager) CatalogSyncer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := service.Service.AdminServiceGroup.CatalogService.SyncItems(ctx); err != nil {
		return err
	}
	service.Service.AdminServiceGroup.CatalogService.ReloadIntents()
	return nil
}

// DebounceCatalogSync 防抖调用CatalogSyncer, 配置热重载等密集触发场景使用
func (m *Manager) DebounceCatalogSync(delay time.Duration) {
	catalogSyncMutex.Lock()
	defer catalogSyncMutex.Unlock()

	if catalogSyncTimer != nil {
		catalogSyncTimer.Stop()
	}

	catalogSyncTimer = time.AfterFunc(delay, func() {
		global.Log.Info("触发经防抖处理的目录同步任务...")
		if err := m.CatalogSyncer(); err != nil {
			global.Log.Errorf("执行经防抖处理的目录同步任务失败: %v", err)
		}
	})
	global.Log.Infof("目录同步任务已调度在 %v 后执行", delay)
}
