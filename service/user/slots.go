package user

import (
	"regexp"
	"strings"

	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

type ISlotService interface {
	// Extract 从原文做基于模式的槽位抽取, 只补模型没给出的槽位
	Extract(text string, intent enum.Intent) common.ExtractedSlots
	// Merge 以base为准, 用patch补空槽
	Merge(base, patch common.ExtractedSlots) common.ExtractedSlots
}

type slotService struct {
	foodPattern     *regexp.Regexp
	storePattern    *regexp.Regexp
	locationPattern *regexp.Regexp
	quantityPattern *regexp.Regexp
	timePattern     *regexp.Regexp
	orderPattern    *regexp.Regexp
	personPattern   *regexp.Regexp
	numberWords     map[string]string
}

func NewSlotService() ISlotService {
	return &slotService{
		foodPattern: regexp.MustCompile(`(?i)\b(biryani|biriyani|dosa|idli|paneer( tikka)?|chole( bhature)?|momos|thali|samosa|pav bhaji|vada pav|paratha|naan|dal( makhani)?|chai|lassi|pizza|burger|noodles|spring rolls?|fried rice|manchurian|shawarma|kebab|tandoori chicken|butter chicken|rajma|poha|upma|jalebi|gulab jamun|ice ?cream|cold ?drink|coke|pepsi)\b`),
		// 店铺引用: "X se" / "from X" / "X wale se"
		storePattern: regexp.MustCompile(`(?i)(?:from|@)\s+([a-z][\w' ]{2,30}?)(?:\s+(?:in|near|at)\b|[,.!?]|$)|([\w' ]{3,30}?)\s+(?:se mangwa|wale se|ki dukaan)`),
		// 位置引用: "in X" / "X ke paas" / "near X" / "X mein"
		locationPattern: regexp.MustCompile(`(?i)(?:\bin|\bnear|\bat|\bto)\s+([a-z][\w ]{2,30}?)(?:[,.!?]|$)|([\w ]{3,30}?)\s+(?:ke paas|ke pass|mein bhej|bhej do|deliver)`),
		quantityPattern: regexp.MustCompile(`(?i)\b(\d{1,3}|ek|do|teen|char|paanch|one|two|three|four|five|half|aadha)\s*(?:x\b|plates?|pieces?|kg|packs?|bottles?|cups?|glass(?:es)?|portions?)?\b`),
		timePattern:     regexp.MustCompile(`(?i)\b(abhi|kal|aaj|raat ko|subah|shaam ko|tonight|today|tomorrow|now|asap|\d{1,2}(?::\d{2})?\s*(?:am|pm|baje))\b`),
		orderPattern:    regexp.MustCompile(`(?i)(?:#|order\s*(?:id|no\.?|number)?\s*[:#]?\s*)([A-Z]{0,3}\d{4,12})\b`),
		// 代收件人: "papa ko" / "for mom" 这类指向他人的表达
		personPattern: regexp.MustCompile(`(?i)\b(papa|mummy|maa|mom|dad|bhai|behen|didi|uncle|aunty|dost|friend|wife|husband|beta|beti)\b\s*(?:ko|ke liye|ke ghar)?`),
		numberWords: map[string]string{
			"ek": "1", "do": "2", "teen": "3", "char": "4", "paanch": "5",
			"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
			"half": "0.5", "aadha": "0.5",
		},
	}
}

func (s *slotService) Extract(text string, intent enum.Intent) common.ExtractedSlots {
	var slots common.ExtractedSlots

	if m := s.foodPattern.FindString(text); m != "" {
		slots.Food = strings.ToLower(strings.TrimSpace(m))
	}
	if m := s.storePattern.FindStringSubmatch(text); m != nil {
		slots.Store = firstGroup(m)
	}
	if m := s.locationPattern.FindStringSubmatch(text); m != nil {
		slots.Location = firstGroup(m)
	}
	if m := s.orderPattern.FindStringSubmatch(text); m != nil {
		slots.Order = strings.ToUpper(m[1])
	}
	if m := s.timePattern.FindStringSubmatch(text); m != nil {
		slots.Time = strings.ToLower(strings.TrimSpace(m[1]))
	}
	if m := s.quantityPattern.FindStringSubmatch(text); m != nil {
		q := strings.ToLower(strings.TrimSpace(m[1]))
		if digits, ok := s.numberWords[q]; ok {
			q = digits
		}
		slots.Quantity = q
	}
	// 代寄/代购场景才有收件人槽位, 其他意图里亲属称呼多是口头语("bhai ek chai")
	if intent == enum.IntentSendParcel {
		if m := s.personPattern.FindStringSubmatch(text); m != nil {
			slots.Person = strings.ToLower(strings.TrimSpace(m[1]))
		}
	}
	return slots
}

func (s *slotService) Merge(base, patch common.ExtractedSlots) common.ExtractedSlots {
	if base.Food == "" {
		base.Food = patch.Food
	}
	if base.Store == "" {
		base.Store = patch.Store
	}
	if base.Location == "" {
		base.Location = patch.Location
	}
	if base.Quantity == "" {
		base.Quantity = patch.Quantity
	}
	if base.Time == "" {
		base.Time = patch.Time
	}
	if base.Order == "" {
		base.Order = patch.Order
	}
	if base.Person == "" {
		base.Person = patch.Person
	}
	return base
}

// firstGroup 返回第一个非空捕获组, 模式里多个分支只会命中其一
func firstGroup(m []string) string {
	for _, g := range m[1:] {
		g = strings.TrimSpace(g)
		if g != "" {
			return strings.ToLower(g)
		}
	}
	return ""
}
