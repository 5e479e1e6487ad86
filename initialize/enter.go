package initialize

import (
	"context"
	"io"
	"sync"

	"gitee.com/taoJie_1/nlu-agent/task"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Initializer 统一管理项目的所有初始化工作
type Initializer struct {
	cron           *cron.Cron
	logFileClosers []io.Closer
	reloadLock     sync.Mutex
	healthCancel   context.CancelFunc
}

// Run 并发执行所有核心服务的初始化
func (i *Initializer) Run() error {
	eg, _ := errgroup.WithContext(context.Background())

	// 关键任务，失败会终止程序
	eg.Go(i.dbStart)
	eg.Go(i.initClassifier)
	eg.Go(i.initSearch)
	eg.Go(i.initGeocode)

	// 非关键任务，失败只打印日志，不影响启动:
	// Redis缺失只是没有缓存和去重快速路径, LLM缺失只是失去兜底链路
	eg.Go(func() error {
		i.initRedis()
		return nil
	})
	eg.Go(func() error {
		i.initLlm()
		return nil
	})
	eg.Go(func() error {
		i.initLlmEmbedding()
		return nil
	})
	eg.Go(func() error {
		i.initVectorDb()
		return nil
	})
	eg.Go(func() error {
		i.initOss()
		return nil
	})

	return eg.Wait()
}

// Close 优雅地关闭和释放所有资源
func (i *Initializer) Close() {
	if i.healthCancel != nil {
		i.healthCancel()
	}
	i.timerStop()
	_ = i.dbClose()
	_ = i.redisClose()
	_ = i.vectorDbClose()
	_ = i.ossClose()
	for _, closer := range i.logFileClosers {
		_ = closer.Close()
	}
}

// StartSystem 启动系统级服务，如定时器和数据加载
func (i *Initializer) StartSystem(taskManager *task.Manager) {
	if err := i.timerStart(taskManager); err != nil {
		panic(err)
	}
	i.loadData(taskManager)
}
