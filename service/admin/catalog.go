package admin

import (
	"context"
	"fmt"

	"gitee.com/taoJie_1/nlu-agent/dao"
	"gitee.com/taoJie_1/nlu-agent/global"
)

// catalogInvalidator 意图目录缓存的失效入口, 由用户侧目录服务实现
type catalogInvalidator interface {
	Invalidate()
}

type ICatalogService interface {
	// SyncItems 从遗留后端全量拉取菜品目录并写入向量数据库。
	// 全量覆盖式同步, 目录规模在万级以内, 不做增量。
	SyncItems(ctx context.Context) (int, error)
	// ReloadIntents 使意图目录缓存失效, 运营改库后调用
	ReloadIntents()
}

type catalogService struct {
	invalidator catalogInvalidator
}

func NewCatalogService(invalidator catalogInvalidator) ICatalogService {
	return &catalogService{invalidator: invalidator}
}

func (s *catalogService) SyncItems(ctx context.Context) (int, error) {
	if global.SearchService == nil {
		return 0, fmt.Errorf("搜索服务未初始化")
	}

	items, err := global.SearchService.LegacyListItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("从遗留后端拉取菜品目录失败: %w", err)
	}
	if len(items) == 0 {
		global.Log.Warn("[catalog-sync] 遗留后端返回空目录, 跳过本次同步")
		return 0, nil
	}

	docs := make([]dao.ItemDoc, 0, len(items))
	for _, item := range items {
		if item.ItemID == "" || item.Name == "" {
			continue
		}
		docs = append(docs, dao.ItemDoc{
			ItemID:  item.ItemID,
			Name:    item.Name,
			StoreID: item.StoreID,
			Price:   item.Price,
		})
	}

	count, err := dao.App.VectorDb.BatchUpsert(ctx, docs)
	if err != nil {
		return 0, err
	}
	global.Log.Infof("[catalog-sync] 菜品目录同步完成: %d条", count)
	return count, nil
}

func (s *catalogService) ReloadIntents() {
	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}
	global.Log.Info("[catalog-sync] 意图目录缓存已失效, 下次请求将重新读库")
}
