package initialize

import (
	"time"

	"gitee.com/taoJie_1/nlu-agent/dao"
	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/service/user"
	"gitee.com/taoJie_1/nlu-agent/task"
)

// loadData 加载业务所需数据
func (i *Initializer) loadData(taskManager *task.Manager) {
	// 空库首次启动时写入内置意图表
	if err := dao.App.IntentCatalogDb.Seed(user.DefaultIntentCatalog); err != nil {
		global.Log.Errorln("写入内置意图目录失败, LLM兜底将使用静态表:", err)
	}

	// 启动后稍等片刻做一次目录同步, 不阻塞启动流程
	taskManager.DebounceCatalogSync(time.Duration(global.Config.Ai.CatalogReloadDebounce) * time.Second)
}
