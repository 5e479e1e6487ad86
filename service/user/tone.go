package user

import (
	"strings"

	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// ToneResult 语气/情绪分析结果
type ToneResult struct {
	Tone      enum.Tone
	Sentiment enum.Sentiment
	Urgency   float64
}

type IToneService interface {
	Analyze(text string) ToneResult
}

// toneService 纯词表+标点的确定性分析, 同一输入永远给同一结果。
// 训练数据导出依赖这一点, 不能换成模型。
type toneService struct {
	angryWords      []string
	urgentWords     []string
	happyWords      []string
	politeWords     []string
	confusedWords   []string
	frustratedWords []string
}

func NewToneService() IToneService {
	return &toneService{
		angryWords: []string{
			"bakwas", "bekar", "ghatiya", "gussa", "worst", "stupid", "useless",
			"pathetic", "third class", "faltu", "kharab service",
		},
		urgentWords: []string{
			"jaldi", "urgent", "abhi", "asap", "turant", "immediately", "right now",
			"emergency", "fatafat", "jldi",
		},
		happyWords: []string{
			"thanks", "thank you", "shukriya", "dhanyawad", "badhiya", "mast",
			"great", "awesome", "love", "zabardast",
		},
		politeWords: []string{
			"please", "kripya", "pls", "plz", "request",
		},
		confusedWords: []string{
			"samajh nahi", "samjha nahi", "confused", "kya matlab", "matlab kya",
			"what do you mean", "kaise kare", "kaise karu",
		},
		frustratedWords: []string{
			"kab se", "still waiting", "phir se", "fir se", "again and again",
			"kitni baar", "baar baar", "not working", "kaam nahi kar",
		},
	}
}

func (t *toneService) Analyze(text string) ToneResult {
	normalized := strings.ToLower(text)

	angry := countHits(normalized, t.angryWords)
	urgent := countHits(normalized, t.urgentWords)
	frustrated := countHits(normalized, t.frustratedWords)
	happy := countHits(normalized, t.happyWords)
	confused := countHits(normalized, t.confusedWords)
	polite := countHits(normalized, t.politeWords)
	exclaims := strings.Count(text, "!")

	// 紧迫度: 紧急词占大头, 连续感叹号和愤怒词小幅加成
	urgency := 0.3*float64(urgent) + 0.1*float64(exclaims) + 0.15*float64(angry+frustrated)
	if urgency > 1 {
		urgency = 1
	}

	// 负面语气优先级高于正面: 投诉里夹一句thanks不改变整体语气
	var tone enum.Tone
	switch {
	case angry > 0:
		tone = enum.ToneAngry
	case frustrated > 0:
		tone = enum.ToneFrustrated
	case urgent > 0:
		tone = enum.ToneUrgent
	case confused > 0:
		tone = enum.ToneConfused
	case happy > 0:
		tone = enum.ToneHappy
	case polite > 0:
		tone = enum.TonePolite
	default:
		tone = enum.ToneNeutral
	}

	var sentiment enum.Sentiment
	switch tone {
	case enum.ToneAngry, enum.ToneFrustrated:
		sentiment = enum.SentimentNegative
	case enum.ToneHappy, enum.TonePolite:
		sentiment = enum.SentimentPositive
	default:
		sentiment = enum.SentimentNeutral
	}

	return ToneResult{Tone: tone, Sentiment: sentiment, Urgency: urgency}
}

func countHits(text string, words []string) int {
	var n int
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
