package db

import "gitee.com/taoJie_1/nlu-agent/model/enum"

// TrainingSample 每次分类产出的标注样本
// 不变式: normalized_text 全局唯一, 先写者胜, 重复写入静默丢弃
type TrainingSample struct {
	BaseField
	Text           string            `db:"text" json:"text" info:"原始文本"`
	NormalizedText string            `db:"normalized_text" json:"normalized_text" info:"归一化文本, 唯一键"`
	Intent         string            `db:"intent" json:"intent" info:"意图"`
	Entities       string            `db:"entities" json:"entities" info:"实体JSON"`
	Tone           string            `db:"tone" json:"tone" info:"语气"`
	Confidence     float64           `db:"confidence" json:"confidence" info:"置信度"`
	Source         enum.SampleSource `db:"source" json:"source" info:"来源"`
	Status         enum.ReviewStatus `db:"status" json:"status" info:"审核状态"`
	Language       string            `db:"language" json:"language" info:"语言"`
	UserID         string            `db:"user_id" json:"user_id" info:"用户标识, 不透明字符串"`
	SessionID      string            `db:"session_id" json:"session_id" info:"会话标识"`
}

func (TrainingSample) TableName() string {
	return `training_samples`
}
