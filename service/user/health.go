package user

import (
	"context"
	"sync/atomic"
	"time"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/internal/classifier"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// EndpointState 健康追踪器对外暴露的快照
type EndpointState struct {
	Active      enum.Endpoint `json:"active"`
	LastProbeAt time.Time     `json:"last_probe_at"`
	LastError   string        `json:"last_error,omitempty"`
}

type IHealthService interface {
	// Active 当前应该请求的分类端点, 永不阻塞
	Active() enum.Endpoint
	// State 当前状态快照, 供探活接口/统计使用
	State() EndpointState
	// ReportFailure 分类调用失败时上报, 主端点失败会立即切备
	ReportFailure(endpoint enum.Endpoint, err error)
	// ReprobeAsync 异步探测主端点。带最小间隔保护, 重复调用廉价, 请求路径随便调
	ReprobeAsync()
	// Run 周期性探测循环, 由初始化层起goroutine跑, ctx取消时退出
	Run(ctx context.Context)
}

type healthService struct {
	classifier classifier.Service
	interval   time.Duration
	state      atomic.Value // EndpointState
	probing    atomic.Bool
}

// NewHealthService 构造时同步探测一次主端点并决定初始路由;
// 主端点可用时异步做一次预热调用, 把首个真实请求的冷启动延迟吃掉。
func NewHealthService(cls classifier.Service) IHealthService {
	h := &healthService{
		classifier: cls,
		interval:   time.Duration(global.Config.Classifier.ProbeInterval) * time.Second,
	}
	if h.interval <= 0 {
		h.interval = 120 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(global.Config.Classifier.WarmupTimeout)*time.Second)
	defer cancel()

	if err := cls.Probe(ctx, enum.EndpointPrimary); err != nil {
		global.Log.Warnf("[health] 主分类端点启动探测失败, 初始路由切到备用: %v", err)
		h.state.Store(EndpointState{Active: enum.EndpointFallback, LastProbeAt: time.Now(), LastError: err.Error()})
	} else {
		h.state.Store(EndpointState{Active: enum.EndpointPrimary, LastProbeAt: time.Now()})
		go h.warmup(enum.EndpointPrimary)
	}
	return h
}

func (h *healthService) Active() enum.Endpoint {
	return h.state.Load().(EndpointState).Active
}

func (h *healthService) State() EndpointState {
	return h.state.Load().(EndpointState)
}

func (h *healthService) ReportFailure(endpoint enum.Endpoint, err error) {
	cur := h.state.Load().(EndpointState)
	if endpoint == enum.EndpointPrimary && cur.Active == enum.EndpointPrimary {
		global.Log.Warnf("[health] 主分类端点请求失败, 切换到备用: %v", err)
		h.state.Store(EndpointState{Active: enum.EndpointFallback, LastProbeAt: cur.LastProbeAt, LastError: err.Error()})
	}
}

func (h *healthService) ReprobeAsync() {
	cur := h.state.Load().(EndpointState)
	if cur.Active == enum.EndpointPrimary {
		return
	}
	// 间隔保护: 降级期间每个请求都会调这里, 不能每次都真探
	if time.Since(cur.LastProbeAt) < h.interval {
		return
	}
	if !h.probing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer h.probing.Store(false)
		h.probe()
	}()
}

func (h *healthService) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.probing.CompareAndSwap(false, true) {
				h.probe()
				h.probing.Store(false)
			}
		}
	}
}

func (h *healthService) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(global.Config.Classifier.Timeout)*time.Second)
	defer cancel()

	cur := h.state.Load().(EndpointState)
	err := h.classifier.Probe(ctx, enum.EndpointPrimary)
	if err != nil {
		if cur.Active == enum.EndpointPrimary {
			global.Log.Warnf("[health] 主分类端点探测失败, 切换到备用: %v", err)
		}
		h.state.Store(EndpointState{Active: enum.EndpointFallback, LastProbeAt: time.Now(), LastError: err.Error()})
		return
	}

	if cur.Active == enum.EndpointFallback {
		global.Log.Info("[health] 主分类端点恢复, 路由切回主端点")
		go h.warmup(enum.EndpointPrimary)
	}
	h.state.Store(EndpointState{Active: enum.EndpointPrimary, LastProbeAt: time.Now()})
}

// warmup 发送一条预热文本, 让远端把模型权重加载进显存。失败不影响路由。
func (h *healthService) warmup(endpoint enum.Endpoint) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(global.Config.Classifier.WarmupTimeout)*time.Second)
	defer cancel()
	if err := h.classifier.Warmup(ctx, endpoint); err != nil {
		global.Log.Warnf("[health] 端点 %s 预热失败: %v", endpoint, err)
	}
}
