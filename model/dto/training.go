package dto

// IntentRecord 意图分类训练记录
type IntentRecord struct {
	Text     string `json:"text"`
	Intent   string `json:"intent"`
	Language string `json:"language"`
}

// EntityRecord 序列标注训练记录, Tags为逐token的BIO标签
type EntityRecord struct {
	Tokens []string `json:"tokens"`
	Tags   []string `json:"tags"`
}

// ToneRecord 语气分类训练记录
type ToneRecord struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// ExportResult 一次导出操作的产物描述
type ExportResult struct {
	ExportedAt   int64  `json:"exported_at"`
	IntentFile   string `json:"intent_file"`
	EntityFile   string `json:"entity_file"`
	ToneFile     string `json:"tone_file"`
	IntentCount  int    `json:"intent_count"`
	EntityCount  int    `json:"entity_count"`
	ToneCount    int    `json:"tone_count"`
	OssObjectKey string `json:"oss_object_key,omitempty"`
}

// TrainingStats 训练语料统计
type TrainingStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	BySource map[string]int64 `json:"by_source"`
	ByIntent map[string]int64 `json:"by_intent"`
}

// ImportRequest 训练样本批量导入请求(导出的逆操作)
type ImportRequest struct {
	Samples []IntentRecord `json:"samples" binding:"required,min=1"`
}
