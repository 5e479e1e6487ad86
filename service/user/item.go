package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"gitee.com/taoJie_1/nlu-agent/dao"
	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/internal/search"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/db"
)

// itemResolver 菜品/商品解析。三级降级链:
// 向量语义检索(处理拼写变体和同义表达) -> 搜索索引全文查询 -> 遗留后端关键词匹配。
type itemResolver struct {
	search     search.Service
	preference IPreferenceService
}

func (r *itemResolver) resolve(ctx context.Context, query string, rctx *common.ResolutionContext) []common.ResolvedItem {
	var userID string
	if rctx != nil {
		userID = rctx.UserID
	}
	boosts := r.preference.BoostFor(userID, db.PreferenceEntityItem, query)

	if resolved := r.fromVector(ctx, query, boosts); len(resolved) > 0 {
		return resolved
	}
	if resolved := r.fromIndex(ctx, query, boosts); len(resolved) > 0 {
		return resolved
	}
	return r.fromLegacy(ctx, query)
}

func (r *itemResolver) fromVector(ctx context.Context, query string, boosts map[string]float64) []common.ResolvedItem {
	topK := global.Config.Ai.VectorSearchTopK
	if topK <= 0 {
		topK = 5
	}

	hits, err := dao.App.VectorDb.Search(ctx, query, topK)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			global.Log.Warnf("[resolve] 向量检索菜品失败, 降级到搜索索引: %v", err)
		}
		return nil
	}

	threshold := global.Config.Ai.VectorSimilarityThreshold
	resolved := make([]common.ResolvedItem, 0, len(hits))
	for _, hit := range hits {
		if hit.Similarity < threshold {
			continue
		}
		score := float64(hit.Similarity)
		reason := "semantic match"
		if boost, ok := boosts[hit.ItemID]; ok && boost > 0 {
			score += boost
			reason = fmt.Sprintf("semantic match + past preference (%.2f)", boost)
		}
		if score > 1 {
			score = 1
		}
		resolved = append(resolved, common.ResolvedItem{
			ItemID:  hit.ItemID,
			Name:    hit.Name,
			StoreID: hit.StoreID,
			Price:   hit.Price,
			Score:   score,
			Reason:  reason,
		})
	}

	sort.SliceStable(resolved, func(i, j int) bool { return resolved[i].Score > resolved[j].Score })
	if len(resolved) > 3 {
		resolved = resolved[:3]
	}
	return resolved
}

func (r *itemResolver) fromIndex(ctx context.Context, query string, boosts map[string]float64) []common.ResolvedItem {
	hits, err := r.search.SearchItems(ctx, query, nil)
	if err != nil {
		global.Log.Warnf("[resolve] 搜索索引菜品查询失败, 退到遗留后端: %v", err)
		return nil
	}

	resolved := make([]common.ResolvedItem, 0, len(hits))
	for _, hit := range hits {
		score := hit.Score
		reason := "search index match"
		if boost, ok := boosts[hit.ItemID]; ok && boost > 0 {
			score += boost
			reason = fmt.Sprintf("search index match + past preference (%.2f)", boost)
		}
		if score > 1 {
			score = 1
		}
		resolved = append(resolved, common.ResolvedItem{
			ItemID:  hit.ItemID,
			Name:    hit.Name,
			StoreID: hit.StoreID,
			Price:   hit.Price,
			Score:   score,
			Reason:  reason,
		})
	}

	sort.SliceStable(resolved, func(i, j int) bool { return resolved[i].Score > resolved[j].Score })
	if len(resolved) > 3 {
		resolved = resolved[:3]
	}
	return resolved
}

func (r *itemResolver) fromLegacy(ctx context.Context, query string) []common.ResolvedItem {
	hits, err := r.search.LegacySearchItems(ctx, query)
	if err != nil {
		global.Log.Errorf("[resolve] 遗留后端菜品查询也失败: %v", err)
		return nil
	}

	resolved := make([]common.ResolvedItem, 0, len(hits))
	for _, hit := range hits {
		resolved = append(resolved, common.ResolvedItem{
			ItemID:  hit.ItemID,
			Name:    hit.Name,
			StoreID: hit.StoreID,
			Price:   hit.Price,
			Score:   0.7,
			Reason:  "legacy keyword match (degraded)",
		})
		if len(resolved) >= 3 {
			break
		}
	}
	return resolved
}
