package db

// IntentCatalog 意图目录, LLM兜底抽取的提示词从这里动态构建
type IntentCatalog struct {
	BaseField
	Name        string `db:"name" json:"name" info:"意图名"`
	Description string `db:"description" json:"description" info:"意图描述"`
	Active      bool   `db:"active" json:"active" info:"是否启用"`
}

func (IntentCatalog) TableName() string {
	return `intent_catalog`
}
