package classifier

import (
	"testing"
)

// TestNormalize 确保三代分类服务响应格式都能被正确归一化,
// 防止某个端点升级响应格式后线上静默解析失败。
func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantIntent string
		wantConf   float64
		wantSlots  map[string]string
	}{
		{
			name:       "v3格式",
			body:       `{"intent":"order_food","confidence":0.91,"tone":"neutral","entities":{"raw":{"food":"biryani","quantity":"2"}}}`,
			wantIntent: "order_food",
			wantConf:   0.91,
			wantSlots:  map[string]string{"food": "biryani", "quantity": "2"},
		},
		{
			name:       "v2格式",
			body:       `{"intent":"track_order","intent_conf":0.87,"slots":[{"type":"order","value":"ORD12345"}]}`,
			wantIntent: "track_order",
			wantConf:   0.87,
			wantSlots:  map[string]string{"order": "ORD12345"},
		},
		{
			name:       "v1格式",
			body:       `{"intent":"search_store","confidence":0.72,"entities":{"store":"sharma kirana"}}`,
			wantIntent: "search_store",
			wantConf:   0.72,
			wantSlots:  map[string]string{"store": "sharma kirana"},
		},
		{
			name:       "v1格式无实体",
			body:       `{"intent":"casual_chat","confidence":0.95}`,
			wantIntent: "casual_chat",
			wantConf:   0.95,
			wantSlots:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Normalize([]byte(tt.body))
			if err != nil {
				t.Fatalf("Normalize() 返回错误: %v", err)
			}
			if result.Intent != tt.wantIntent {
				t.Errorf("Intent = %q, 期望 %q", result.Intent, tt.wantIntent)
			}
			if result.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, 期望 %v", result.Confidence, tt.wantConf)
			}
			if len(result.Slots) != len(tt.wantSlots) {
				t.Fatalf("Slots = %v, 期望 %v", result.Slots, tt.wantSlots)
			}
			for k, v := range tt.wantSlots {
				if result.Slots[k] != v {
					t.Errorf("Slots[%q] = %q, 期望 %q", k, result.Slots[k], v)
				}
			}
		})
	}
}

// TestNormalizePriority 多代字段同时存在时, 必须以最新格式为准
func TestNormalizePriority(t *testing.T) {
	// 同时带有v3的entities.raw和v2的intent_conf, 应按v3解析
	body := `{"intent":"order_food","confidence":0.9,"intent_conf":0.1,"entities":{"raw":{"food":"dosa"}}}`
	result, err := Normalize([]byte(body))
	if err != nil {
		t.Fatalf("Normalize() 返回错误: %v", err)
	}
	if result.Confidence != 0.9 {
		t.Errorf("应优先使用v3的confidence字段, got %v", result.Confidence)
	}
	if result.Slots["food"] != "dosa" {
		t.Errorf("应解析v3的entities.raw, got %v", result.Slots)
	}
}

func TestNormalizeUnrecognized(t *testing.T) {
	for _, body := range []string{
		`{"message":"hello"}`,
		`not json at all`,
		`{"intent":""}`,
	} {
		if _, err := Normalize([]byte(body)); err == nil {
			t.Errorf("无法识别的响应 %q 应返回错误", body)
		}
	}
}
