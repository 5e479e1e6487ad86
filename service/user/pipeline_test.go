package user

import (
	"context"
	"strings"
	"testing"

	"gitee.com/taoJie_1/nlu-agent/internal/classifier"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// newTestPipeline 用桩件组装完整流水线, redis/数据库均不接入
func newTestPipeline(cls *fakeClassifier, llm *fakeLlm) IPipelineService {
	rules := NewRuleService()
	catalog := NewCatalogService()
	return NewPipelineService(
		rules,
		NewClassifyService(cls, NewHealthService(cls), rules),
		NewLlmExtractService(llm, catalog, rules),
		NewSlotService(),
		NewToneService(),
		NewCaptureService(nil),
		nil,
	)
}

// TestPipelineRuleShortCircuit 规则可判的文本不应触达模型和LLM
func TestPipelineRuleShortCircuit(t *testing.T) {
	cls := newFakeClassifier()
	llm := &fakeLlm{}
	pipeline := newTestPipeline(cls, llm)

	got, err := pipeline.Process(context.Background(), &common.ClassificationRequest{Text: "mera order kahan hai"})
	if err != nil {
		t.Fatalf("Process() 返回错误: %v", err)
	}
	if got.Intent != enum.IntentTrackOrder {
		t.Errorf("Intent = %s, 期望 track_order", got.Intent)
	}
	if got.Confidence != 0.92 {
		t.Errorf("Confidence = %v, 期望 0.92", got.Confidence)
	}
	if got.Provider != enum.ProviderRuleOverride {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderRuleOverride)
	}
	if cls.calls(enum.EndpointPrimary)+cls.calls(enum.EndpointFallback) != 0 {
		t.Error("规则短路时不应调用分类模型")
	}
	if llm.calls != 0 {
		t.Error("规则短路时不应调用LLM")
	}
}

// TestPipelineModelPath 模型高置信时直接采纳, 模式抽取补全缺失槽位
func TestPipelineModelPath(t *testing.T) {
	cls := newFakeClassifier()
	cls.primaryResult = &classifier.Result{
		Intent:     "order_food",
		Confidence: 0.91,
		Slots:      map[string]string{"food": "biryani"},
	}
	llm := &fakeLlm{}
	pipeline := newTestPipeline(cls, llm)

	got, err := pipeline.Process(context.Background(), &common.ClassificationRequest{Text: "do biryani bhej do abhi"})
	if err != nil {
		t.Fatalf("Process() 返回错误: %v", err)
	}
	if got.Intent != enum.IntentOrderFood {
		t.Errorf("Intent = %s, 期望 order_food", got.Intent)
	}
	if got.Slots.Food != "biryani" {
		t.Errorf("模型给出的Food槽位丢失: %+v", got.Slots)
	}
	if got.Slots.Quantity != "2" {
		t.Errorf("模式抽取应补上Quantity=2, got %q", got.Slots.Quantity)
	}
	if got.Slots.Time != "abhi" {
		t.Errorf("模式抽取应补上Time=abhi, got %q", got.Slots.Time)
	}
	if got.Entities["food"] != "biryani" {
		t.Errorf("Entities视图与Slots不一致: %v", got.Entities)
	}
	if llm.calls != 0 {
		t.Error("高置信结果不应升级到LLM")
	}
}

// TestPipelineLlmEscalation 模型低置信时升级到LLM, 采纳更有把握的结果
func TestPipelineLlmEscalation(t *testing.T) {
	cls := newFakeClassifier()
	cls.primaryResult = &classifier.Result{Intent: "unknown", Confidence: 0.2}
	llm := &fakeLlm{reply: `{"intent":"order_food","confidence":0.85,"entities":{"food":"khana"}}`}
	pipeline := newTestPipeline(cls, llm)

	got, err := pipeline.Process(context.Background(), &common.ClassificationRequest{Text: "kuch khane ka man hai yaar"})
	if err != nil {
		t.Fatalf("Process() 返回错误: %v", err)
	}
	if got.Intent != enum.IntentOrderFood {
		t.Errorf("Intent = %s, 期望 order_food", got.Intent)
	}
	if got.Confidence != 0.85 {
		t.Errorf("Confidence = %v, 期望 0.85", got.Confidence)
	}
	if got.Provider != enum.ProviderLlm {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderLlm)
	}
	if llm.calls != 1 {
		t.Errorf("LLM应被调用一次, 实际%d次", llm.calls)
	}
}

// TestPipelineDeterministicTone 语气由确定性分析给出, 模型的tone不作数
func TestPipelineDeterministicTone(t *testing.T) {
	cls := newFakeClassifier()
	cls.primaryResult = &classifier.Result{Intent: "complaint", Confidence: 0.9, Tone: "happy"}
	pipeline := newTestPipeline(cls, &fakeLlm{})

	got, err := pipeline.Process(context.Background(), &common.ClassificationRequest{Text: "bakwas paneer bheja refund karo"})
	if err != nil {
		t.Fatalf("Process() 返回错误: %v", err)
	}
	if got.Tone != enum.ToneAngry {
		t.Errorf("Tone = %s, 期望确定性分析给出的 angry", got.Tone)
	}
	if got.Sentiment != enum.SentimentNegative {
		t.Errorf("Sentiment = %s, 期望 negative", got.Sentiment)
	}
}

// TestPipelineInputValidation 空文本与超长文本直接拒绝
func TestPipelineInputValidation(t *testing.T) {
	pipeline := newTestPipeline(newFakeClassifier(), &fakeLlm{})

	if _, err := pipeline.Process(context.Background(), &common.ClassificationRequest{Text: "   "}); err == nil {
		t.Error("空文本应返回错误")
	}

	long := strings.Repeat("a", 501)
	if _, err := pipeline.Process(context.Background(), &common.ClassificationRequest{Text: long}); err == nil {
		t.Error("超长文本应返回错误")
	}
}
