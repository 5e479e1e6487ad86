package common

import "gitee.com/taoJie_1/nlu-agent/model/enum"

// LlmMessage 发送给LLM的聊天消息格式
type LlmMessage struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // 消息内容
}

// ExtractedSlots 从文本中抽取出的原始槽位, 均为用户的原话, 尚未解析为后端实体
type ExtractedSlots struct {
	Food     string `json:"food,omitempty"`
	Store    string `json:"store,omitempty"`
	Location string `json:"location,omitempty"`
	Quantity string `json:"quantity,omitempty"`
	Time     string `json:"time,omitempty"`
	Order    string `json:"order,omitempty"`
	Person   string `json:"person,omitempty"`
}

// IsEmpty 判断是否没有任何槽位
func (s *ExtractedSlots) IsEmpty() bool {
	return s.Food == "" && s.Store == "" && s.Location == "" &&
		s.Quantity == "" && s.Time == "" && s.Order == "" && s.Person == ""
}

// ToMap 转为 槽位名->原文 的映射, 用于对外返回和训练样本落库
func (s *ExtractedSlots) ToMap() map[string]string {
	m := make(map[string]string, 7)
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("food", s.Food)
	put("store", s.Store)
	put("location", s.Location)
	put("quantity", s.Quantity)
	put("time", s.Time)
	put("order", s.Order)
	put("person", s.Person)
	return m
}

// ClassificationResult 分类流水线的最终产出
// 不变式: Confidence ∈ [0,1]; Intent 永不为空, 无法识别时为 enum.IntentUnknown
type ClassificationResult struct {
	Intent               enum.Intent       `json:"intent"`
	Confidence           float64           `json:"confidence"`
	Entities             map[string]string `json:"entities"`
	Slots                ExtractedSlots    `json:"slots"`
	Tone                 enum.Tone         `json:"tone"`
	Sentiment            enum.Sentiment    `json:"sentiment"`
	Urgency              float64           `json:"urgency"`
	Provider             enum.Provider     `json:"provider"`
	LatencyMs            int64             `json:"latency_ms"`
	Reasoning            string            `json:"reasoning,omitempty"`
	NeedsClarification   bool              `json:"needs_clarification,omitempty"`
	ClarificationOptions []string          `json:"clarification_options,omitempty"`
}

// LlmExtraction LLM兜底抽取的解析目标, 字段名与 enum.SystemPromptExtractBase 保持一致
type LlmExtraction struct {
	Intent               string            `json:"intent"`
	Confidence           float64           `json:"confidence"`
	Entities             map[string]string `json:"entities"`
	Tone                 string            `json:"tone"`
	Urgency              float64           `json:"urgency"`
	Reasoning            string            `json:"reasoning"`
	NeedsClarification   bool              `json:"needs_clarification"`
	ClarificationOptions []string          `json:"clarification_options"`
}

// ResolvedStore 解析到的具体店铺
type ResolvedStore struct {
	StoreID    string  `json:"store_id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km,omitempty"`
	Score      float64 `json:"score"`  // 匹配分 0-1
	Reason     string  `json:"reason"` // 可读的匹配依据
}

// ResolvedItem 解析到的具体商品/菜品
type ResolvedItem struct {
	ItemID  string  `json:"item_id"`
	Name    string  `json:"name"`
	StoreID string  `json:"store_id,omitempty"`
	Price   float64 `json:"price,omitempty"`
	Score   float64 `json:"score"`
	Reason  string  `json:"reason"`
}

// ResolvedLocation 解析到的具体位置
type ResolvedLocation struct {
	Lat     float64             `json:"lat"`
	Lng     float64             `json:"lng"`
	Address string              `json:"address,omitempty"`
	Source  enum.LocationSource `json:"source"`
	Score   float64             `json:"score"`
	Reason  string              `json:"reason"`
}

// ResolvedOrder 解析到的具体订单
type ResolvedOrder struct {
	OrderID  string  `json:"order_id"`
	IsRecent bool    `json:"is_recent"` // true表示"上一单/重来一单"类引用
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`
}

// ResolvedPerson 解析到的收件人/联系人
type ResolvedPerson struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone,omitempty"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// ResolvedEntities 一次解析请求的完整结果, 仅在请求生命周期内存在
type ResolvedEntities struct {
	Stores               []ResolvedStore   `json:"stores,omitempty"`
	Items                []ResolvedItem    `json:"items,omitempty"`
	Location             *ResolvedLocation `json:"location,omitempty"`
	Order                *ResolvedOrder    `json:"order,omitempty"`
	Person               *ResolvedPerson   `json:"person,omitempty"`
	ResolutionConfidence float64           `json:"resolution_confidence"`
	Ambiguities          []string          `json:"ambiguities"` // 未能解析的槽位名
}

// ResolutionContext 解析时可用的请求上下文
type ResolutionContext struct {
	UserID    string   `json:"user_id"`
	SessionID string   `json:"session_id"`
	Lat       *float64 `json:"lat,omitempty"` // 调用方携带的当前坐标
	Lng       *float64 `json:"lng,omitempty"`
	Language  string   `json:"language,omitempty"`
}

// IntentCatalogEntry 意图目录条目(读穿缓存的值类型)
type IntentCatalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
