package user

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gitee.com/taoJie_1/nlu-agent/internal/classifier"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// fakeClassifier 可编程的分类端点桩, 按端点配置返回值
type fakeClassifier struct {
	mu            sync.Mutex
	primaryResult *classifier.Result
	primaryErr    error
	fallbackErr   error
	probeErr      error
	classifyCalls map[enum.Endpoint]int
}

func newFakeClassifier() *fakeClassifier {
	return &fakeClassifier{classifyCalls: make(map[enum.Endpoint]int)}
}

func (f *fakeClassifier) Classify(ctx context.Context, endpoint enum.Endpoint, text string) (*classifier.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.classifyCalls[endpoint]++
	if endpoint == enum.EndpointPrimary {
		if f.primaryErr != nil {
			return nil, f.primaryErr
		}
		return f.primaryResult, nil
	}
	if f.fallbackErr != nil {
		return nil, f.fallbackErr
	}
	return f.primaryResult, nil
}

func (f *fakeClassifier) Probe(ctx context.Context, endpoint enum.Endpoint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probeErr
}

func (f *fakeClassifier) Warmup(ctx context.Context, endpoint enum.Endpoint) error {
	return nil
}

func (f *fakeClassifier) calls(endpoint enum.Endpoint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.classifyCalls[endpoint]
}

func TestClassifyPrimaryHappyPath(t *testing.T) {
	fake := newFakeClassifier()
	fake.primaryResult = &classifier.Result{
		Intent:     "order_food",
		Confidence: 0.91,
		Slots:      map[string]string{"food": "biryani", "quantity": "2"},
	}

	svc := NewClassifyService(fake, NewHealthService(fake), NewRuleService())
	got := svc.Classify(context.Background(), "do biryani bhej do")

	if got.Intent != enum.IntentOrderFood {
		t.Errorf("Intent = %s, 期望 order_food", got.Intent)
	}
	if got.Provider != enum.ProviderPrimaryModel {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderPrimaryModel)
	}
	if got.Slots.Food != "biryani" || got.Slots.Quantity != "2" {
		t.Errorf("模型槽位未透传: %+v", got.Slots)
	}
	if fake.calls(enum.EndpointFallback) != 0 {
		t.Error("主端点正常时不应请求备用端点")
	}
}

// TestClassifyPrimaryFailsOver 主端点请求失败: 上报健康追踪器并在备用端点重试一次
func TestClassifyPrimaryFailsOver(t *testing.T) {
	fake := newFakeClassifier()
	fake.primaryErr = errors.New("connection refused")
	fake.primaryResult = &classifier.Result{Intent: "track_order", Confidence: 0.8}

	health := NewHealthService(fake)
	svc := NewClassifyService(fake, health, NewRuleService())
	got := svc.Classify(context.Background(), "order kab tak aayega bhai")

	if got.Intent != enum.IntentTrackOrder {
		t.Errorf("Intent = %s, 期望 track_order", got.Intent)
	}
	if got.Provider != enum.ProviderFallbackModel {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderFallbackModel)
	}
	if health.Active() != enum.EndpointFallback {
		t.Error("主端点失败后健康追踪器应切换到备用端点")
	}
	if fake.calls(enum.EndpointPrimary) != 1 || fake.calls(enum.EndpointFallback) != 1 {
		t.Errorf("主备各应调用一次, 实际 primary=%d fallback=%d",
			fake.calls(enum.EndpointPrimary), fake.calls(enum.EndpointFallback))
	}
}

// TestClassifyBothFail 双端点不可用时降级为 unknown/0, 绝不向上抛错
func TestClassifyBothFail(t *testing.T) {
	fake := newFakeClassifier()
	fake.primaryErr = errors.New("primary down")
	fake.fallbackErr = errors.New("fallback down")

	svc := NewClassifyService(fake, NewHealthService(fake), NewRuleService())
	got := svc.Classify(context.Background(), "do biryani bhej do")

	if got == nil {
		t.Fatal("降级时也必须返回非nil结果")
	}
	if got.Intent != enum.IntentUnknown || got.Confidence != 0 {
		t.Errorf("双端点失败应返回 unknown/0, got %s/%v", got.Intent, got.Confidence)
	}
}

// TestClassifyBlindspotOverride 模型盲区输出在分类层被后置规则修正
func TestClassifyBlindspotOverride(t *testing.T) {
	fake := newFakeClassifier()
	fake.primaryResult = &classifier.Result{Intent: "browse_menu", Confidence: 0.55}

	svc := NewClassifyService(fake, NewHealthService(fake), NewRuleService())
	got := svc.Classify(context.Background(), "biryani chahiye")

	if got.Intent != enum.IntentOrderFood {
		t.Errorf("Intent = %s, 期望被修正为 order_food", got.Intent)
	}
	if got.Provider != enum.ProviderRuleOverride {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderRuleOverride)
	}
	if got.Confidence < 0.8 {
		t.Errorf("修正后置信度 = %v, 期望 >= 0.8", got.Confidence)
	}
}
