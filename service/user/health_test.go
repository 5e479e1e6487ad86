package user

import (
	"errors"
	"testing"

	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// TestHealthInitialProbe 启动探测决定初始路由
func TestHealthInitialProbe(t *testing.T) {
	fake := newFakeClassifier()
	health := NewHealthService(fake)
	if health.Active() != enum.EndpointPrimary {
		t.Errorf("主端点健康时初始路由应为primary, got %s", health.Active())
	}

	fake = newFakeClassifier()
	fake.probeErr = errors.New("model not loaded")
	health = NewHealthService(fake)
	if health.Active() != enum.EndpointFallback {
		t.Errorf("主端点探测失败时初始路由应为fallback, got %s", health.Active())
	}
	if health.State().LastError == "" {
		t.Error("探测失败后State().LastError不应为空")
	}
}

// TestHealthReportFailure 请求路径上报主端点失败应立即切备, 不等下一轮探测
func TestHealthReportFailure(t *testing.T) {
	fake := newFakeClassifier()
	health := NewHealthService(fake)

	health.ReportFailure(enum.EndpointPrimary, errors.New("timeout"))
	if health.Active() != enum.EndpointFallback {
		t.Errorf("上报失败后应切换到fallback, got %s", health.Active())
	}

	// 备用端点的失败上报不改变路由, 已经没有更低的降级目标了
	health.ReportFailure(enum.EndpointFallback, errors.New("timeout"))
	if health.Active() != enum.EndpointFallback {
		t.Errorf("备用端点失败不应改变路由, got %s", health.Active())
	}
}

// TestHealthReprobeNoopWhenPrimary 主端点在线时ReprobeAsync应当是空操作
func TestHealthReprobeNoopWhenPrimary(t *testing.T) {
	fake := newFakeClassifier()
	health := NewHealthService(fake)

	health.ReprobeAsync()
	if health.Active() != enum.EndpointPrimary {
		t.Errorf("ReprobeAsync不应改变健康主端点的路由, got %s", health.Active())
	}
}
