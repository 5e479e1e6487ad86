package dao

import (
	"errors"
	"fmt"
	"time"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/db"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

type UserPreferenceDb struct{}

// Upsert 幂等累加一条偏好计数。
// 唯一键: (user_id, entity_type, entity_id, query)。并发竞争时后写者只是多加一次计数, 无害。
func (d *UserPreferenceDb) Upsert(userID, entityType, entityID, query string) error {
	table := db.UserPreference{}.TableName()
	now := time.Now().Unix()

	var sqlStr string
	switch global.Config.Database.Type {
	case string(enum.MYSQL):
		sqlStr = fmt.Sprintf(
			"INSERT INTO `%s` (`user_id`, `entity_type`, `entity_id`, `query`, `success_count`, `last_used_at`, `created_at`, `updated_at`) VALUES (?, ?, ?, ?, 1, ?, ?, ?) "+
				"ON DUPLICATE KEY UPDATE `success_count` = `success_count` + 1, `last_used_at` = VALUES(`last_used_at`), `updated_at` = VALUES(`updated_at`)",
			table)
	case string(enum.SQLITE):
		sqlStr = fmt.Sprintf(
			"INSERT INTO `%s` (`user_id`, `entity_type`, `entity_id`, `query`, `success_count`, `last_used_at`, `created_at`, `updated_at`) VALUES (?, ?, ?, ?, 1, ?, ?, ?) "+
				"ON CONFLICT(`user_id`, `entity_type`, `entity_id`, `query`) DO UPDATE SET `success_count` = `success_count` + 1, `last_used_at` = excluded.`last_used_at`, `updated_at` = excluded.`updated_at`",
			table)
	default:
		return errors.New("数据库类型错误[p3wfa]")
	}

	_, err := DB.Exec(sqlStr, userID, entityType, entityID, query, now, now, now)
	if err != nil {
		return fmt.Errorf("写入用户偏好失败: %w", err)
	}
	return nil
}

// ListByUser 取一个用户某类实体的全部偏好记录, 按成功次数和最近使用排序。
// 精确/子串匹配在服务层做, 这里不做查询文本过滤(记录量级为每用户数十条)。
func (d *UserPreferenceDb) ListByUser(userID, entityType string) ([]db.UserPreference, error) {
	var prefs []db.UserPreference
	sqlStr := fmt.Sprintf(
		"SELECT * FROM `%s` WHERE `user_id` = ? AND `entity_type` = ? ORDER BY `success_count` DESC, `last_used_at` DESC LIMIT 50",
		db.UserPreference{}.TableName())
	if err := DB.Select(&prefs, sqlStr, userID, entityType); err != nil {
		return nil, fmt.Errorf("查询用户偏好失败: %w", err)
	}
	return prefs, nil
}
