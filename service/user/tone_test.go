package user

import (
	"testing"

	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

func TestToneAnalyze(t *testing.T) {
	tone := NewToneService()

	tests := []struct {
		text          string
		wantTone      enum.Tone
		wantSentiment enum.Sentiment
	}{
		{"ye bakwas service hai", enum.ToneAngry, enum.SentimentNegative},
		{"kab se wait kar raha hu, still waiting", enum.ToneFrustrated, enum.SentimentNegative},
		{"jaldi bhejo please", enum.ToneUrgent, enum.SentimentNeutral},
		{"samajh nahi aaya kya karna hai", enum.ToneConfused, enum.SentimentNeutral},
		{"shukriya bhai, badhiya service", enum.ToneHappy, enum.SentimentPositive},
		{"please ek chai bhej dena", enum.TonePolite, enum.SentimentPositive},
		{"do samosa chahiye", enum.ToneNeutral, enum.SentimentNeutral},
	}

	for _, tt := range tests {
		got := tone.Analyze(tt.text)
		if got.Tone != tt.wantTone {
			t.Errorf("Analyze(%q).Tone = %s, 期望 %s", tt.text, got.Tone, tt.wantTone)
		}
		if got.Sentiment != tt.wantSentiment {
			t.Errorf("Analyze(%q).Sentiment = %s, 期望 %s", tt.text, got.Sentiment, tt.wantSentiment)
		}
	}
}

// TestToneDeterministic 同一输入必须永远给出同一结果, 训练数据导出依赖这一点
func TestToneDeterministic(t *testing.T) {
	tone := NewToneService()
	text := "jaldi karo! khana thanda ho gaya, bakwas delivery"

	first := tone.Analyze(text)
	for i := 0; i < 10; i++ {
		got := tone.Analyze(text)
		if got != first {
			t.Fatalf("第%d次分析结果不一致: %+v != %+v", i, got, first)
		}
	}
}

// TestToneNegativePriority 投诉里夹正面词, 整体语气仍为负面
func TestToneNegativePriority(t *testing.T) {
	tone := NewToneService()
	got := tone.Analyze("thanks for nothing, bakwas service")
	if got.Tone != enum.ToneAngry {
		t.Errorf("负面语气应优先于正面, got %s", got.Tone)
	}
	if got.Sentiment != enum.SentimentNegative {
		t.Errorf("Sentiment = %s, 期望 negative", got.Sentiment)
	}
}

func TestToneUrgencyRange(t *testing.T) {
	tone := NewToneService()
	for _, text := range []string{
		"jaldi jaldi urgent abhi turant bhejo!!!! emergency hai asap",
		"do samosa",
	} {
		got := tone.Analyze(text)
		if got.Urgency < 0 || got.Urgency > 1 {
			t.Errorf("Analyze(%q).Urgency = %v, 超出[0,1]", text, got.Urgency)
		}
	}
}
