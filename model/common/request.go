package common

// RequestContext 调用方附带的自由上下文, 流水线从不解释其中的标识符
type RequestContext struct {
	ActiveFlow string       `json:"active_flow,omitempty"` // 当前所处的会话流程/模块
	LastPrompt string       `json:"last_prompt,omitempty"` // 系统上一次问用户的问题
	History    []LlmMessage `json:"history,omitempty"`     // 简短的对话历史
}

// ClassificationRequest 入站分类请求
type ClassificationRequest struct {
	Text      string         `json:"text" binding:"required,min=1,max=500"`
	Language  string         `json:"language,omitempty"` // "hi"/"en"/"hi-en"/"auto"
	Context   RequestContext `json:"context,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
}

// ResolveRequest 实体解析请求
type ResolveRequest struct {
	Slots   ExtractedSlots    `json:"slots"`
	Context ResolutionContext `json:"context"`
}

// LearnRequest 下游动作(如订单完成)确认后上报的学习请求
type LearnRequest struct {
	UserID  string   `json:"user_id" binding:"required"`
	Query   string   `json:"query" binding:"required"`
	StoreID string   `json:"store_id,omitempty"`
	ItemIDs []string `json:"item_ids,omitempty"`
}
