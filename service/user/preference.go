package user

import (
	"context"
	"math"
	"strings"
	"time"

	"gitee.com/taoJie_1/nlu-agent/dao"
	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/db"
	"golang.org/x/sync/errgroup"
)

// PreferenceHit 一条历史偏好及其加权分
type PreferenceHit struct {
	EntityID string
	Boost    float64 // 叠加到搜索匹配分上的加成, 有上限
}

type IPreferenceService interface {
	// LearnFromSuccess 订单确认后回写偏好计数, 同一(user, entity, query)幂等累加
	LearnFromSuccess(ctx context.Context, userID, query, storeID string, itemIDs []string) error
	// BoostFor 返回历史上该用户同类查询成功解析过的实体及加成分
	BoostFor(userID, entityType, query string) map[string]float64
}

type preferenceService struct{}

func NewPreferenceService() IPreferenceService {
	return &preferenceService{}
}

func (s *preferenceService) LearnFromSuccess(ctx context.Context, userID, query, storeID string, itemIDs []string) error {
	if dao.DB == nil {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))

	g, _ := errgroup.WithContext(ctx)
	if storeID != "" {
		g.Go(func() error {
			return dao.App.UserPreferenceDb.Upsert(userID, db.PreferenceEntityStore, storeID, query)
		})
	}
	for _, itemID := range itemIDs {
		id := itemID
		if id == "" {
			continue
		}
		g.Go(func() error {
			return dao.App.UserPreferenceDb.Upsert(userID, db.PreferenceEntityItem, id, query)
		})
	}
	return g.Wait()
}

// BoostFor 偏好加成 = min(0.2, 0.05*成功次数) * 时间衰减。
// 查询文本做双向子串匹配: "biryani"要能对上历史上的"chicken biryani"。
func (s *preferenceService) BoostFor(userID, entityType, query string) map[string]float64 {
	if dao.DB == nil || userID == "" {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	prefs, err := dao.App.UserPreferenceDb.ListByUser(userID, entityType)
	if err != nil {
		global.Log.Warnf("[resolve] 读取用户偏好失败: %v", err)
		return nil
	}

	boosts := make(map[string]float64)
	now := time.Now().Unix()
	for _, p := range prefs {
		stored := strings.ToLower(p.Query)
		if !strings.Contains(stored, query) && !strings.Contains(query, stored) {
			continue
		}

		boost := 0.05 * float64(p.SuccessCount)
		if boost > 0.2 {
			boost = 0.2
		}
		// 半年半衰期: 老口味不清零, 但让位给近期习惯
		ageDays := float64(now-p.LastUsedAt) / 86400
		boost *= math.Pow(0.5, ageDays/180)

		if boost > boosts[p.EntityID] {
			boosts[p.EntityID] = boost
		}
	}
	return boosts
}
