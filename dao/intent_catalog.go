package dao

import (
	"fmt"

	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/db"
)

type IntentCatalogDb struct{}

// GetActiveList 获取所有启用的意图条目
func (d *IntentCatalogDb) GetActiveList() ([]common.IntentCatalogEntry, error) {
	var list []common.IntentCatalogEntry
	sqlStr := fmt.Sprintf("SELECT `name`, `description` FROM `%s` WHERE `active` = ? ORDER BY `id` ASC", db.IntentCatalog{}.TableName())
	if err := DB.Select(&list, sqlStr, true); err != nil {
		return nil, fmt.Errorf("查询意图目录失败: %w", err)
	}
	return list, nil
}

// Count 目录条目总数
func (d *IntentCatalogDb) Count() (int64, error) {
	var count int64
	sqlStr := fmt.Sprintf("SELECT COUNT(*) FROM `%s`", db.IntentCatalog{}.TableName())
	if err := DB.Get(&count, sqlStr); err != nil {
		return 0, err
	}
	return count, nil
}

// Seed 目录为空时写入内置意图表, 已有数据时不做任何事
func (d *IntentCatalogDb) Seed(entries []common.IntentCatalogEntry) error {
	count, err := d.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var sqlData []map[string]interface{}
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		sqlData = append(sqlData, map[string]interface{}{
			"name":        e.Name,
			"description": e.Description,
			"active":      true,
		})
	}

	sqlStr, args, err := utils.getBatchInsertSql(db.IntentCatalog{}, sqlData)
	if err != nil {
		return fmt.Errorf("构建意图目录批量插入SQL失败: %w", err)
	}
	if sqlStr == "" {
		return nil
	}

	if _, err := DB.Exec(DB.Rebind(sqlStr), args...); err != nil {
		return fmt.Errorf("写入内置意图目录失败: %w", err)
	}
	return nil
}
