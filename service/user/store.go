package user

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/internal/search"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/db"
	"github.com/sahilm/fuzzy"
)

// storeResolver 店铺解析: 主搜索索引模糊查询 + 本地fuzzy重排 + 历史偏好加成,
// 主索引不可用时退到遗留后端的朴素关键词搜索。
type storeResolver struct {
	search     search.Service
	preference IPreferenceService
}

func (r *storeResolver) resolve(ctx context.Context, query string, location *common.ResolvedLocation, rctx *common.ResolutionContext) []common.ResolvedStore {
	var geo *search.GeoFilter
	if location != nil {
		geo = &search.GeoFilter{
			Lat:      location.Lat,
			Lng:      location.Lng,
			RadiusKm: global.Config.Search.DefaultRadiusKm,
		}
	}

	hits, err := r.search.SearchStores(ctx, query, geo)
	if err != nil || len(hits) == 0 {
		if err != nil {
			global.Log.Warnf("[resolve] 主搜索索引店铺查询失败, 退到遗留后端: %v", err)
		}
		return r.legacyResolve(ctx, query)
	}

	var userID string
	if rctx != nil {
		userID = rctx.UserID
	}
	boosts := r.preference.BoostFor(userID, db.PreferenceEntityStore, query)

	resolved := make([]common.ResolvedStore, 0, len(hits))
	for _, hit := range hits {
		score := combineStoreScore(query, hit)
		reason := "search index match"
		if boost, ok := boosts[hit.StoreID]; ok && boost > 0 {
			score += boost
			reason = fmt.Sprintf("search index match + past preference (%.2f)", boost)
		}
		if score > 1 {
			score = 1
		}
		resolved = append(resolved, common.ResolvedStore{
			StoreID:    hit.StoreID,
			Name:       hit.Name,
			DistanceKm: hit.DistanceKm,
			Score:      score,
			Reason:     reason,
		})
	}

	sort.SliceStable(resolved, func(i, j int) bool { return resolved[i].Score > resolved[j].Score })
	if len(resolved) > 3 {
		resolved = resolved[:3]
	}
	return resolved
}

// legacyResolve 遗留后端没有相关性排序, 所有命中给固定分并记录降级
func (r *storeResolver) legacyResolve(ctx context.Context, query string) []common.ResolvedStore {
	hits, err := r.search.LegacySearchStores(ctx, query)
	if err != nil {
		global.Log.Errorf("[resolve] 遗留后端店铺查询也失败: %v", err)
		return nil
	}

	resolved := make([]common.ResolvedStore, 0, len(hits))
	for _, hit := range hits {
		resolved = append(resolved, common.ResolvedStore{
			StoreID: hit.StoreID,
			Name:    hit.Name,
			Score:   0.7, // 朴素关键词匹配无法区分好坏, 统一中等分
			Reason:  "legacy keyword match (degraded)",
		})
		if len(resolved) >= 3 {
			break
		}
	}
	return resolved
}

// combineStoreScore 索引相关性分与本地fuzzy分各占一半。
// 索引已经做过模糊匹配, 本地fuzzy主要用于惩罚名字差得远的长尾命中。
func combineStoreScore(query string, hit search.StoreHit) float64 {
	names := append([]string{hit.Name}, hit.Aliases...)
	matches := fuzzy.Find(strings.ToLower(query), lowerAll(names))

	var fuzzyScore float64
	if len(matches) > 0 {
		// sahilm/fuzzy 的Score无固定上限, 按查询长度粗略归一
		fuzzyScore = float64(matches[0].Score) / float64(len(query)*16)
		if fuzzyScore > 1 {
			fuzzyScore = 1
		}
		if fuzzyScore < 0 {
			fuzzyScore = 0
		}
	}

	indexScore := hit.Score
	if indexScore > 1 {
		indexScore = 1
	}
	return 0.5*indexScore + 0.5*fuzzyScore
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}
