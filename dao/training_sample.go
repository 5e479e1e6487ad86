package dao

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/db"
	"gitee.com/taoJie_1/nlu-agent/model/dto"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

type TrainingSampleDb struct{}

// InsertIgnore 写入一条训练样本, normalized_text 冲突时静默丢弃(先写者胜)。
// 返回是否真正写入。
func (d *TrainingSampleDb) InsertIgnore(sample *db.TrainingSample) (bool, error) {
	var sqlStr string
	table := db.TrainingSample{}.TableName()
	columns := "(`text`, `normalized_text`, `intent`, `entities`, `tone`, `confidence`, `source`, `status`, `language`, `user_id`, `session_id`, `created_at`, `updated_at`)"
	placeholders := "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	switch global.Config.Database.Type {
	case string(enum.MYSQL):
		sqlStr = fmt.Sprintf("INSERT IGNORE INTO `%s` %s VALUES %s", table, columns, placeholders)
	case string(enum.SQLITE):
		sqlStr = fmt.Sprintf("INSERT OR IGNORE INTO `%s` %s VALUES %s", table, columns, placeholders)
	default:
		return false, errors.New("数据库类型错误[tghqz]")
	}

	now := time.Now().Unix()
	result, err := DB.Exec(sqlStr,
		sample.Text, sample.NormalizedText, sample.Intent, sample.Entities,
		sample.Tone, sample.Confidence, sample.Source, sample.Status,
		sample.Language, sample.UserID, sample.SessionID, now, now,
	)
	if err != nil {
		return false, fmt.Errorf("写入训练样本失败: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetByNormalizedText 按归一化文本查询样本, 不存在时返回 sql.ErrNoRows
func (d *TrainingSampleDb) GetByNormalizedText(text string) (*db.TrainingSample, error) {
	var sample db.TrainingSample
	sqlStr := fmt.Sprintf("SELECT * FROM `%s` WHERE `normalized_text` = ? LIMIT 1", db.TrainingSample{}.TableName())
	if err := DB.Get(&sample, sqlStr, text); err != nil {
		return nil, err
	}
	return &sample, nil
}

// UpdateStatus 人工审核或自动审批修改样本状态
func (d *TrainingSampleDb) UpdateStatus(id uint, status enum.ReviewStatus) error {
	sqlStr, args := utils.getUpdateSql(db.TrainingSample{}, id, map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now().Unix(),
	})
	_, err := DB.Exec(sqlStr, args...)
	return err
}

// ListApproved 按审核通过状态取全部样本, 供导出使用
func (d *TrainingSampleDb) ListApproved() ([]db.TrainingSample, error) {
	var samples []db.TrainingSample
	sqlStr := fmt.Sprintf("SELECT * FROM `%s` WHERE `status` = ? ORDER BY `id` ASC", db.TrainingSample{}.TableName())
	if err := DB.Select(&samples, sqlStr, string(enum.ReviewStatusApproved)); err != nil {
		return nil, err
	}
	return samples, nil
}

// Stats 聚合统计训练语料
func (d *TrainingSampleDb) Stats() (*dto.TrainingStats, error) {
	table := db.TrainingSample{}.TableName()
	stats := &dto.TrainingStats{
		ByStatus: make(map[string]int64),
		BySource: make(map[string]int64),
		ByIntent: make(map[string]int64),
	}

	if err := DB.Get(&stats.Total, fmt.Sprintf("SELECT COUNT(*) FROM `%s`", table)); err != nil {
		return nil, fmt.Errorf("统计训练样本总数失败: %w", err)
	}

	type kv struct {
		K string `db:"k"`
		V int64  `db:"v"`
	}

	groups := []struct {
		column string
		dest   map[string]int64
	}{
		{"status", stats.ByStatus},
		{"source", stats.BySource},
		{"intent", stats.ByIntent},
	}
	for _, g := range groups {
		var rows []kv
		sqlStr := fmt.Sprintf("SELECT `%s` AS k, COUNT(*) AS v FROM `%s` GROUP BY `%s`", g.column, table, g.column)
		if err := DB.Select(&rows, sqlStr); err != nil {
			return nil, fmt.Errorf("按%s统计训练样本失败: %w", g.column, err)
		}
		for _, row := range rows {
			g.dest[row.K] = row.V
		}
	}

	return stats, nil
}

// BatchImport 批量导入样本(导出的逆操作), 逐条走InsertIgnore以保持去重语义。
// 返回实际写入条数。
func (d *TrainingSampleDb) BatchImport(samples []db.TrainingSample) (int, error) {
	inserted := 0
	for i := range samples {
		ok, err := d.InsertIgnore(&samples[i])
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// DeleteById 管理端显式删除, 训练样本的唯一删除入口
func (d *TrainingSampleDb) DeleteById(id uint) error {
	sqlStr := fmt.Sprintf("DELETE FROM `%s` WHERE `id` = ?", db.TrainingSample{}.TableName())
	result, err := DB.Exec(sqlStr, id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
