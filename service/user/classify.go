package user

import (
	"context"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/internal/classifier"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
	"gitee.com/taoJie_1/nlu-agent/utils"
)

type IClassifyService interface {
	// Classify 调用统计分类模型, 含主备切换与降级。
	// 两个端点都失败时返回 unknown/0 的降级结果而不是error, 由上层决定是否升级到LLM。
	Classify(ctx context.Context, text string) *common.ClassificationResult
}

type classifyService struct {
	classifier classifier.Service
	health     IHealthService
	rules      IRuleService
}

func NewClassifyService(cls classifier.Service, health IHealthService, rules IRuleService) IClassifyService {
	return &classifyService{classifier: cls, health: health, rules: rules}
}

func (s *classifyService) Classify(ctx context.Context, text string) *common.ClassificationResult {
	endpoint := s.health.Active()
	if endpoint == enum.EndpointFallback {
		// 降级期间顺手触发一次异步探活, 不等待结果
		s.health.ReprobeAsync()
	}

	raw, err := s.classifier.Classify(ctx, endpoint, text)
	if err != nil && endpoint == enum.EndpointPrimary {
		// 主端点失败只重试一次, 且只在备用端点上
		s.health.ReportFailure(endpoint, err)
		endpoint = enum.EndpointFallback
		raw, err = s.classifier.Classify(ctx, endpoint, text)
	}
	if err != nil {
		global.Log.Errorf("[classify] 主备分类端点均不可用: %v", err)
		return &common.ClassificationResult{
			Intent:     enum.IntentUnknown,
			Confidence: 0,
			Provider:   s.providerFor(endpoint),
			Reasoning:  "classifier unavailable",
		}
	}

	result := s.toResult(text, raw)
	if result.Provider == "" {
		result.Provider = s.providerFor(endpoint)
	}
	return result
}

func (s *classifyService) providerFor(endpoint enum.Endpoint) enum.Provider {
	if endpoint == enum.EndpointFallback {
		return enum.ProviderFallbackModel
	}
	return enum.ProviderPrimaryModel
}

// toResult 把归一化后的模型输出转成业务结果, 并套一层已知盲区修正
func (s *classifyService) toResult(text string, raw *classifier.Result) *common.ClassificationResult {
	intent := enum.Intent(raw.Intent)
	confidence := utils.Clamp01(raw.Confidence)

	intent, confidence, overridden := s.rules.OverrideModel(text, intent, confidence)

	result := &common.ClassificationResult{
		Intent:     intent,
		Confidence: confidence,
		Slots:      slotsFromMap(raw.Slots),
		Tone:       enum.Tone(raw.Tone),
	}
	if overridden {
		result.Provider = enum.ProviderRuleOverride
		result.Reasoning = "model output corrected by known-blindspot rule"
	}
	return result
}

func slotsFromMap(m map[string]string) common.ExtractedSlots {
	return common.ExtractedSlots{
		Food:     m["food"],
		Store:    m["store"],
		Location: m["location"],
		Quantity: m["quantity"],
		Time:     m["time"],
		Order:    m["order"],
		Person:   m["person"],
	}
}
