package initialize

import (
	"context"
	"reflect"
	"strings"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/config"
	"gitee.com/taoJie_1/nlu-agent/service"
	"golang.org/x/sync/errgroup"
)

// HandleConfigChange 检测配置变化并安全地、并发地重载相关服务
func (i *Initializer) HandleConfigChange(oldConfig, newConfig *config.Config) {
	i.reloadLock.Lock()
	defer i.reloadLock.Unlock()

	var restartNeeded []string

	// --- 1. 检查不可热重载的高风险配置 ---
	if !reflect.DeepEqual(oldConfig.Database, newConfig.Database) {
		restartNeeded = append(restartNeeded, "database")
	}
	if oldConfig.GinAddr != newConfig.GinAddr {
		restartNeeded = append(restartNeeded, "gin_addr")
	}
	if oldConfig.GinLogPath != newConfig.GinLogPath || oldConfig.RunLogPath != newConfig.RunLogPath {
		restartNeeded = append(restartNeeded, "log_path")
	}
	// 健康追踪器的周期探测循环在启动时绑定了旧客户端, 端点地址变更需要重启
	if !reflect.DeepEqual(oldConfig.Classifier, newConfig.Classifier) {
		restartNeeded = append(restartNeeded, "classifier")
	}

	// --- 2. 并发执行可安全热重载的任务 ---
	eg, _ := errgroup.WithContext(context.Background())

	// 时区重载
	if oldConfig.Tz != newConfig.Tz {
		eg.Go(func() error {
			if err := i.InitTz(); err != nil {
				global.Log.Errorf("热重载时区失败: %v", err)
				return err
			}
			return nil
		})
	}

	// Redis客户端重载
	if !reflect.DeepEqual(oldConfig.Redis, newConfig.Redis) {
		eg.Go(func() error {
			if err := i.redisClose(); err != nil {
				global.Log.Warnf("关闭旧Redis客户端失败: %v", err)
			}
			if err := i.initRedis(); err != nil {
				global.Log.Errorf("热重载Redis客户端失败: %v", err)
				return err
			}
			return nil
		})
	}

	// 搜索服务客户端重载
	if !reflect.DeepEqual(oldConfig.Search, newConfig.Search) {
		eg.Go(func() error {
			if err := i.initSearch(); err != nil {
				global.Log.Errorf("热重载搜索服务客户端失败: %v", err)
				return err
			}
			return nil
		})
	}

	// 地理服务客户端重载
	if !reflect.DeepEqual(oldConfig.Geocode, newConfig.Geocode) {
		eg.Go(func() error {
			if err := i.initGeocode(); err != nil {
				global.Log.Errorf("热重载地理服务客户端失败: %v", err)
				return err
			}
			return nil
		})
	}

	// LLM服务重载
	if !reflect.DeepEqual(oldConfig.Llm, newConfig.Llm) {
		eg.Go(func() error {
			if err := i.initLlm(); err != nil {
				global.Log.Errorf("热重载LLM服务失败: %v", err)
				return err
			}
			return nil
		})
	}

	// 向量化模型服务重载
	if !reflect.DeepEqual(oldConfig.LlmEmbedding, newConfig.LlmEmbedding) {
		eg.Go(func() error {
			if err := i.initLlmEmbedding(); err != nil {
				global.Log.Errorf("热重载向量化模型服务失败: %v", err)
				return err
			}
			return nil
		})
	}

	// 向量数据库客户端重载
	if !reflect.DeepEqual(oldConfig.VectorDb, newConfig.VectorDb) {
		eg.Go(func() error {
			if err := i.vectorDbClose(); err != nil {
				global.Log.Warnf("关闭旧向量数据库客户端失败: %v", err)
			}
			if err := i.initVectorDb(); err != nil {
				global.Log.Errorf("热重载向量数据库客户端失败: %v", err)
				return err
			}
			return nil
		})
	}

	// OSS 服务重载
	if !reflect.DeepEqual(oldConfig.Oss, newConfig.Oss) {
		eg.Go(func() error {
			if err := i.ossClose(); err != nil {
				global.Log.Warnf("关闭旧OSS客户端失败: %v", err)
			}
			if err := i.initOss(); err != nil {
				global.Log.Errorf("热重载OSS客户端失败: %v", err)
				return err
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		global.Log.Errorf("并发热重载过程中发生错误: %v", err)
	}

	// --- 3. 客户端重载完成后重建依赖它们的服务树 ---
	// 规则词表等Ai配置变更也走这里: 服务构造是轻量操作, 统一重建比逐个判断简单
	if !reflect.DeepEqual(oldConfig.Ai, newConfig.Ai) ||
		!reflect.DeepEqual(oldConfig.Llm, newConfig.Llm) ||
		!reflect.DeepEqual(oldConfig.Search, newConfig.Search) ||
		!reflect.DeepEqual(oldConfig.Geocode, newConfig.Geocode) ||
		!reflect.DeepEqual(oldConfig.Redis, newConfig.Redis) {
		service.Setup()

		// 周期探测循环绑定在旧的健康追踪器上, 随服务树一起重建
		if i.healthCancel != nil {
			i.healthCancel()
			healthCtx, cancel := context.WithCancel(context.Background())
			i.healthCancel = cancel
			go service.Service.UserServiceGroup.HealthService.Run(healthCtx)
		}
		global.Log.Info("服务树已按新配置重建")
	}

	// --- 4. 如果有需要重启的变更，发出统一警告 ---
	if len(restartNeeded) > 0 {
		global.Log.Warnf("检测到存在需要 重启服务 才能生效的配置变更: [%s]。", strings.Join(restartNeeded, ", "))
	}

	global.Log.Info("配置变更处理完成")
}
