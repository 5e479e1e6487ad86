package user

import (
	"regexp"
	"strings"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// RuleMatch 规则层命中的结果
type RuleMatch struct {
	Intent     enum.Intent
	Confidence float64
	Reasoning  string
}

type IRuleService interface {
	// Match 前置规则: 高频且统计模型经常判错的类别, 命中则完全跳过模型调用
	Match(text string) (*RuleMatch, bool)
	// OverrideModel 后置规则: 已知的模型盲区修正, 返回修正后的意图/置信度
	OverrideModel(text string, intent enum.Intent, confidence float64) (enum.Intent, float64, bool)
}

// preRule 一条前置短路规则, 按序匹配
type preRule struct {
	intent     enum.Intent
	confidence float64
	reasoning  string
	pattern    *regexp.Regexp
	keywords   []string
}

type ruleService struct {
	preRules []preRule
	// 地方菜名词表, 与"要/来一份"类表达组合时强制point到order_food
	foodTermPattern *regexp.Regexp
	needPattern     *regexp.Regexp
}

// 关键词表是针对线上误判病例手工调出来的, 机制稳定, 词表本身允许随配置扩充
func NewRuleService() IRuleService {
	casual := []string{
		"hi", "hello", "hey", "namaste", "namaskar", "hii", "hiii",
		"good morning", "good evening", "good night",
		"kaise ho", "kya haal hai", "how are you",
	}
	menu := []string{
		"menu", "menu dikhao", "menu dikha", "kya kya hai", "kya kya milta",
		"what do you have", "show menu", "kya milega", "list dikhao",
	}
	track := []string{
		"order kahan hai", "mera order kahan", "order kab aayega", "order status",
		"kahan pahuncha", "where is my order", "order kidhar hai", "delivery kab hogi",
	}

	if extra := global.Config.Ai.ExtraCasualKeywords; len(extra) > 0 {
		casual = append(casual, extra...)
	}
	if extra := global.Config.Ai.ExtraMenuKeywords; len(extra) > 0 {
		menu = append(menu, extra...)
	}
	if extra := global.Config.Ai.ExtraTrackOrderKeywords; len(extra) > 0 {
		track = append(track, extra...)
	}

	return &ruleService{
		// 顺序即优先级: 查单 > 菜单 > 闲聊
		preRules: []preRule{
			{
				intent:     enum.IntentTrackOrder,
				confidence: 0.92,
				reasoning:  "matched order-tracking keyword family",
				keywords:   track,
			},
			{
				intent:     enum.IntentBrowseMenu,
				confidence: 0.90,
				reasoning:  "matched menu-browsing keyword family",
				keywords:   menu,
			},
			{
				intent:     enum.IntentCasualChat,
				confidence: 0.90,
				reasoning:  "matched greeting/casual keyword family",
				pattern:    regexp.MustCompile(`^(hi+|hello+|hey+|namaste|namaskar|yo|hola)[!. ]*$`),
				keywords:   casual,
			},
		},
		foodTermPattern: regexp.MustCompile(`(?i)\b(biryani|biriyani|dosa|idli|paneer|chole|momos|thali|samosa|pav bhaji|vada pav|paratha|naan|dal|chai|lassi|pizza|burger|noodles|rolls?)\b`),
		needPattern:     regexp.MustCompile(`(?i)(chahiye|chaiye|mangwa|mangva|bhej do|bhejo|order karo|karna hai|want|need|de do|dedo|send|le aao)`),
	}
}

func (r *ruleService) Match(text string) (*RuleMatch, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil, false
	}

	for _, rule := range r.preRules {
		if rule.pattern != nil && rule.pattern.MatchString(normalized) {
			return &RuleMatch{Intent: rule.intent, Confidence: rule.confidence, Reasoning: rule.reasoning}, true
		}
		for _, kw := range rule.keywords {
			// 短关键词要求整句相等, 避免"hi"误伤"chahiye"这类包含关系
			if len(kw) <= 4 {
				if normalized == kw {
					return &RuleMatch{Intent: rule.intent, Confidence: rule.confidence, Reasoning: rule.reasoning}, true
				}
				continue
			}
			if strings.Contains(normalized, kw) {
				return &RuleMatch{Intent: rule.intent, Confidence: rule.confidence, Reasoning: rule.reasoning}, true
			}
		}
	}
	return nil, false
}

func (r *ruleService) OverrideModel(text string, intent enum.Intent, confidence float64) (enum.Intent, float64, bool) {
	// 已知盲区: 地方菜名+"要一份"类口语组合, 统计模型常给到 browse_menu 或 unknown。
	// 线上数据显示这类表达实际下单率远高于模型置信度, 故强制修正。
	if r.foodTermPattern.MatchString(text) && r.needPattern.MatchString(text) {
		if intent != enum.IntentOrderFood || confidence < 0.85 {
			forced := global.Config.Ai.RuleOverrideConfidence
			if forced <= 0 {
				forced = 0.88
			}
			global.Log.Infof("[rules] 已知误判修正: %q %s(%.2f) -> %s", text, intent, confidence, enum.IntentOrderFood)
			return enum.IntentOrderFood, forced, true
		}
	}
	return intent, confidence, false
}
