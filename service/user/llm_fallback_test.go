package user

import (
	"context"
	"errors"
	"testing"

	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// fakeLlm 可编程的LLM桩, reply/err 控制每次调用的返回
type fakeLlm struct {
	reply string
	err   error
	calls int
}

func (f *fakeLlm) ChatCompletion(ctx context.Context, size enum.LlmSize, systemPrompt string, content string, history []common.LlmMessage, temperature ...float32) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeLlm) GetCompletion(ctx context.Context, size enum.LlmSize, systemPrompt string, content string, temperature ...float32) (string, error) {
	return f.ChatCompletion(ctx, size, systemPrompt, content, nil, temperature...)
}

func TestLlmExtractParsesJson(t *testing.T) {
	fake := &fakeLlm{reply: `{"intent":"order_food","confidence":0.88,"entities":{"food":"paneer tikka","quantity":"2"},"tone":"neutral","urgency":0.2}`}
	svc := NewLlmExtractService(fake, NewCatalogService(), NewRuleService())

	got := svc.Extract(context.Background(), "paneer tikka mangwana hai do plate", enum.LanguageHinglish, nil)
	if got.Intent != enum.IntentOrderFood {
		t.Errorf("Intent = %s, 期望 order_food", got.Intent)
	}
	if got.Confidence != 0.88 {
		t.Errorf("Confidence = %v, 期望 0.88", got.Confidence)
	}
	if got.Provider != enum.ProviderLlm {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderLlm)
	}
	if got.Slots.Food != "paneer tikka" || got.Slots.Quantity != "2" {
		t.Errorf("Slots = %+v, 实体未正确透传", got.Slots)
	}
}

// TestLlmExtractFencedJson markdown代码块包裹的JSON也要能解析
func TestLlmExtractFencedJson(t *testing.T) {
	fake := &fakeLlm{reply: "Here is the analysis:\n```json\n{\"intent\":\"complaint\",\"confidence\":0.92}\n```"}
	svc := NewLlmExtractService(fake, NewCatalogService(), NewRuleService())

	got := svc.Extract(context.Background(), "khana thanda aaya refund do", enum.LanguageHinglish, nil)
	if got.Intent != enum.IntentComplaint {
		t.Errorf("Intent = %s, 期望 complaint", got.Intent)
	}
	if got.Provider != enum.ProviderLlm {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderLlm)
	}
}

// TestLlmExtractUnstructuredReply LLM没按要求输出JSON时,
// 回复里出现的意图名应被启发式捕获, 置信度固定0.6。
func TestLlmExtractUnstructuredReply(t *testing.T) {
	fake := &fakeLlm{reply: "I think the user wants track_order here."}
	svc := NewLlmExtractService(fake, NewCatalogService(), NewRuleService())

	got := svc.Extract(context.Background(), "bhai bata na kab tak pahunchega", enum.LanguageHinglish, nil)
	if got.Intent != enum.IntentTrackOrder {
		t.Errorf("Intent = %s, 期望 track_order", got.Intent)
	}
	if got.Confidence != 0.6 {
		t.Errorf("Confidence = %v, 期望 0.6", got.Confidence)
	}
	if got.Provider != enum.ProviderHeuristicFallback {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderHeuristicFallback)
	}
}

// TestLlmExtractCallFails LLM完全不可用时退到用户原文的关键词启发式
func TestLlmExtractCallFails(t *testing.T) {
	fake := &fakeLlm{err: errors.New("connection refused")}
	svc := NewLlmExtractService(fake, NewCatalogService(), NewRuleService())

	got := svc.Extract(context.Background(), "cancel karo mat bhejo nahi chahiye", enum.LanguageHinglish, nil)
	if got.Intent != enum.IntentCancelOrder {
		t.Errorf("Intent = %s, 期望 cancel_order", got.Intent)
	}
	if got.Confidence != 0.6 {
		t.Errorf("Confidence = %v, 期望 0.6", got.Confidence)
	}
	if got.Provider != enum.ProviderHeuristicFallback {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderHeuristicFallback)
	}

	// 毫无关键词重叠的文本只能给unknown/0
	got = svc.Extract(context.Background(), "zzz qqq www", enum.LanguageEnglish, nil)
	if got.Intent != enum.IntentUnknown || got.Confidence != 0 {
		t.Errorf("无关键词重叠应返回 unknown/0, got %s/%v", got.Intent, got.Confidence)
	}
}

// TestLlmExtractUnknownIntentName 目录外的意图名必须被压成unknown, 不能放行
func TestLlmExtractUnknownIntentName(t *testing.T) {
	fake := &fakeLlm{reply: `{"intent":"book_flight","confidence":0.95}`}
	svc := NewLlmExtractService(fake, NewCatalogService(), NewRuleService())

	got := svc.Extract(context.Background(), "mumbai ki flight book karo", enum.LanguageHinglish, nil)
	if got.Intent != enum.IntentUnknown {
		t.Errorf("目录外意图应被压成unknown, got %s", got.Intent)
	}
}

// TestLlmExtractRuleShortCircuit 规则可判的文本不应烧LLM token
func TestLlmExtractRuleShortCircuit(t *testing.T) {
	fake := &fakeLlm{reply: `{"intent":"casual_chat","confidence":0.9}`}
	svc := NewLlmExtractService(fake, NewCatalogService(), NewRuleService())

	got := svc.Extract(context.Background(), "mera order kahan hai", enum.LanguageHinglish, nil)
	if got.Intent != enum.IntentTrackOrder {
		t.Errorf("Intent = %s, 期望 track_order", got.Intent)
	}
	if got.Provider != enum.ProviderRuleOverride {
		t.Errorf("Provider = %s, 期望 %s", got.Provider, enum.ProviderRuleOverride)
	}
	if fake.calls != 0 {
		t.Errorf("规则短路时不应调用LLM, 实际调用了%d次", fake.calls)
	}
}

// TestLlmExtractConfidenceClamp LLM自报的越界置信度要被夹回[0,1]
func TestLlmExtractConfidenceClamp(t *testing.T) {
	fake := &fakeLlm{reply: `{"intent":"order_food","confidence":1.7,"urgency":-0.4}`}
	svc := NewLlmExtractService(fake, NewCatalogService(), NewRuleService())

	got := svc.Extract(context.Background(), "biryani bhejo", enum.LanguageHinglish, nil)
	if got.Confidence != 1 {
		t.Errorf("Confidence = %v, 期望夹到1", got.Confidence)
	}
	if got.Urgency != 0 {
		t.Errorf("Urgency = %v, 期望夹到0", got.Urgency)
	}
}
