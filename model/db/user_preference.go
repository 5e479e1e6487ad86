package db

// UserPreference 每用户的实体偏好计数, 由下游确认成功后幂等累加
// 仅用于为消歧加权, 绝不作为硬过滤条件
type UserPreference struct {
	BaseField
	UserID       string `db:"user_id" json:"user_id" info:"用户标识"`
	EntityType   string `db:"entity_type" json:"entity_type" info:"store或item"`
	EntityID     string `db:"entity_id" json:"entity_id" info:"实体标识"`
	Query        string `db:"query" json:"query" info:"用户当时的查询原文"`
	SuccessCount int64  `db:"success_count" json:"success_count" info:"成功次数"`
	LastUsedAt   int64  `db:"last_used_at" json:"last_used_at" info:"最近一次确认时间"`
}

func (UserPreference) TableName() string {
	return `user_preferences`
}

const (
	PreferenceEntityStore = "store"
	PreferenceEntityItem  = "item"
)
