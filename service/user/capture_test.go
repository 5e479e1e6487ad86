package user

import (
	"testing"

	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
	"gitee.com/taoJie_1/nlu-agent/utils"
)

// TestWorthCapturing 采集过滤: 停用短语/低置信/unknown都不该进训练库
func TestWorthCapturing(t *testing.T) {
	svc := NewCaptureService(nil).(*captureService)

	ok := &common.ClassificationResult{Intent: enum.IntentOrderFood, Confidence: 0.9}

	tests := []struct {
		text   string
		result *common.ClassificationResult
		want   bool
	}{
		{"do plate biryani chahiye", ok, true},
		{"hi", ok, false},                // 停用短语
		{"thik hai", ok, false},          // 停用短语
		{"ab", ok, false},                // 过短
		{"", ok, false},                  // 空文本
		{"biryani chahiye abhi ke abhi", // unknown意图
			&common.ClassificationResult{Intent: enum.IntentUnknown, Confidence: 0.9}, false},
		{"biryani chahiye abhi ke abhi", // 低于采集门槛
			&common.ClassificationResult{Intent: enum.IntentOrderFood, Confidence: 0.2}, false},
	}

	for _, tt := range tests {
		got := svc.worthCapturing(utils.NormalizeText(tt.text), tt.result)
		if got != tt.want {
			t.Errorf("worthCapturing(%q, conf=%v, intent=%s) = %v, 期望 %v",
				tt.text, tt.result.Confidence, tt.result.Intent, got, tt.want)
		}
	}
}

// TestDecideStatus 自动审核门槛: 模型0.85 / LLM 0.9, 规则修正按模型算
func TestDecideStatus(t *testing.T) {
	svc := NewCaptureService(nil).(*captureService)

	tests := []struct {
		provider   enum.Provider
		confidence float64
		want       enum.ReviewStatus
	}{
		{enum.ProviderPrimaryModel, 0.9, enum.ReviewStatusApproved},
		{enum.ProviderPrimaryModel, 0.85, enum.ReviewStatusApproved},
		{enum.ProviderPrimaryModel, 0.84, enum.ReviewStatusPending},
		{enum.ProviderFallbackModel, 0.88, enum.ReviewStatusApproved},
		{enum.ProviderRuleOverride, 0.88, enum.ReviewStatusApproved},
		{enum.ProviderLlm, 0.92, enum.ReviewStatusApproved},
		{enum.ProviderLlm, 0.88, enum.ReviewStatusPending},
		{enum.ProviderHeuristicFallback, 0.6, enum.ReviewStatusPending},
	}

	for _, tt := range tests {
		got := svc.decideStatus(&common.ClassificationResult{Provider: tt.provider, Confidence: tt.confidence})
		if got != tt.want {
			t.Errorf("decideStatus(%s, %v) = %s, 期望 %s", tt.provider, tt.confidence, got, tt.want)
		}
	}
}

// TestSampleSource 样本来源归类: LLM及其启发式兜底都算llm来源
func TestSampleSource(t *testing.T) {
	if sourceFor(enum.ProviderLlm) != enum.SampleSourceLlm {
		t.Error("ProviderLlm 应归为 llm 来源")
	}
	if sourceFor(enum.ProviderHeuristicFallback) != enum.SampleSourceLlm {
		t.Error("ProviderHeuristicFallback 应归为 llm 来源")
	}
	if sourceFor(enum.ProviderPrimaryModel) != enum.SampleSourceModel {
		t.Error("ProviderPrimaryModel 应归为 model 来源")
	}
	if sourceFor(enum.ProviderRuleOverride) != enum.SampleSourceModel {
		t.Error("ProviderRuleOverride 应归为 model 来源")
	}
}
