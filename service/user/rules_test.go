package user

import (
	"testing"

	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// TestRuleMatch 规则层短路: 高频句式必须跳过模型直接出结果
func TestRuleMatch(t *testing.T) {
	rules := NewRuleService()

	tests := []struct {
		text       string
		wantIntent enum.Intent
		wantConf   float64
	}{
		{"mera order kahan hai", enum.IntentTrackOrder, 0.92},
		{"bhai mera order kahan hai??", enum.IntentTrackOrder, 0.92},
		{"where is my order", enum.IntentTrackOrder, 0.92},
		{"menu dikhao", enum.IntentBrowseMenu, 0.90},
		{"kya kya milta hai", enum.IntentBrowseMenu, 0.90},
		{"hi", enum.IntentCasualChat, 0.90},
		{"hello!", enum.IntentCasualChat, 0.90},
		{"namaste", enum.IntentCasualChat, 0.90},
		{"kaise ho bhai", enum.IntentCasualChat, 0.90},
	}

	for _, tt := range tests {
		match, ok := rules.Match(tt.text)
		if !ok {
			t.Errorf("Match(%q) 应命中规则", tt.text)
			continue
		}
		if match.Intent != tt.wantIntent {
			t.Errorf("Match(%q).Intent = %s, 期望 %s", tt.text, match.Intent, tt.wantIntent)
		}
		if match.Confidence != tt.wantConf {
			t.Errorf("Match(%q).Confidence = %v, 期望 %v", tt.text, match.Confidence, tt.wantConf)
		}
		if match.Reasoning == "" {
			t.Errorf("Match(%q) 的Reasoning不应为空", tt.text)
		}
	}
}

// TestRuleMatchNegative 正常业务文本不应被规则误伤
func TestRuleMatchNegative(t *testing.T) {
	rules := NewRuleService()

	for _, text := range []string{
		"biryani chahiye",
		"ek chai bhej do",
		"sharma store se paneer mangwana hai",
		"",
		"   ",
	} {
		if match, ok := rules.Match(text); ok {
			t.Errorf("Match(%q) 不应命中规则, got %s", text, match.Intent)
		}
	}
}

// TestOverrideModel 已知盲区: 菜名+需求表达必须被修正为order_food
func TestOverrideModel(t *testing.T) {
	rules := NewRuleService()

	// 模型给了低置信的browse_menu, 应被修正
	intent, conf, overridden := rules.OverrideModel("biryani chahiye", enum.IntentBrowseMenu, 0.5)
	if !overridden {
		t.Fatal("应触发盲区修正")
	}
	if intent != enum.IntentOrderFood {
		t.Errorf("修正后意图 = %s, 期望 %s", intent, enum.IntentOrderFood)
	}
	if conf < 0.8 {
		t.Errorf("修正后置信度 = %v, 期望 >= 0.8", conf)
	}

	// 模型已经高置信给出order_food, 不应再动
	intent, conf, overridden = rules.OverrideModel("biryani chahiye", enum.IntentOrderFood, 0.93)
	if overridden {
		t.Error("高置信的正确结果不应被修正")
	}
	if intent != enum.IntentOrderFood || conf != 0.93 {
		t.Errorf("结果被意外修改: %s %v", intent, conf)
	}

	// 无菜名的文本不应触发
	if _, _, overridden = rules.OverrideModel("mujhe kuch chahiye", enum.IntentUnknown, 0.3); overridden {
		t.Error("无菜名的文本不应触发修正")
	}
}
