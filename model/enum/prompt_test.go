package enum

import (
	"strings"
	"testing"
)

// TestExtractPromptConsistency 确保LLM抽取提示词中的枚举值与代码中的常量严格一致。
// 防止修改常量后忘记同步提示词导致解析不到对应字段。
func TestExtractPromptConsistency(t *testing.T) {
	prompt := string(SystemPromptExtractBase)

	tones := []Tone{
		ToneHappy,
		ToneAngry,
		ToneUrgent,
		ToneNeutral,
		ToneFrustrated,
		TonePolite,
		ToneConfused,
	}
	for _, tone := range tones {
		if !strings.Contains(prompt, string(tone)) {
			t.Errorf("SystemPromptExtractBase应包含语气常量: %s", tone)
		}
	}

	// 解析器依赖的JSON字段名
	jsonKeys := []string{
		`"intent"`,
		`"confidence"`,
		`"entities"`,
		`"tone"`,
		`"urgency"`,
		`"reasoning"`,
		`"needs_clarification"`,
		`"clarification_options"`,
	}
	for _, key := range jsonKeys {
		if !strings.Contains(prompt, key) {
			t.Errorf("SystemPromptExtractBase应包含JSON字段: %s", key)
		}
	}
}
