package user

import (
	"testing"

	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// TestCatalogFallback 数据库未就绪时必须回退到内置意图表, LLM提示词不能缺目录
func TestCatalogFallback(t *testing.T) {
	catalog := NewCatalogService()

	entries := catalog.Get()
	if len(entries) != len(DefaultIntentCatalog) {
		t.Fatalf("无数据库时Get()应返回内置表, got %d 条, 期望 %d 条", len(entries), len(DefaultIntentCatalog))
	}
	for _, e := range entries {
		if e.Name == "" || e.Description == "" {
			t.Errorf("目录条目不完整: %+v", e)
		}
	}
}

func TestCatalogKnownIntent(t *testing.T) {
	catalog := NewCatalogService()

	for _, name := range []string{
		string(enum.IntentOrderFood),
		string(enum.IntentTrackOrder),
		string(enum.IntentSendParcel),
		string(enum.IntentCheckWallet),
	} {
		if !catalog.KnownIntent(name) {
			t.Errorf("KnownIntent(%q) = false, 期望 true", name)
		}
	}

	for _, name := range []string{"book_flight", "", "ORDER_FOOD"} {
		if catalog.KnownIntent(name) {
			t.Errorf("KnownIntent(%q) = true, 期望 false", name)
		}
	}
}

// TestCatalogInvalidate 失效后再次Get仍要可用(回退路径也走一遍)
func TestCatalogInvalidate(t *testing.T) {
	catalog := NewCatalogService()
	catalog.Get()
	catalog.Invalidate()

	entries := catalog.Get()
	if len(entries) == 0 {
		t.Error("Invalidate后Get()返回空目录")
	}
}
