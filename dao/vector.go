package dao

import (
	"context"
	"database/sql"
	"fmt"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/internal/vector"
)

// ItemVectorIDPrefix 向量数据库中菜品/商品文档ID的前缀
const ItemVectorIDPrefix = "item_"

// 向量数据库中元数据的键名
const (
	VectorMetadataKeyItemID  = "item_id"
	VectorMetadataKeyName    = "name"
	VectorMetadataKeyStoreID = "store_id"
	VectorMetadataKeyPrice   = "price"
)

// ItemSearchResult 语义搜索命中的菜品/商品
type ItemSearchResult struct {
	ItemID     string
	Name       string
	StoreID    string
	Price      float64
	Similarity float32
}

type VectorDb struct {
	CollectionName string
}

// ItemDoc 待入库的菜品文档
type ItemDoc struct {
	ItemID  string
	Name    string
	StoreID string
	Price   float64
}

// BatchUpsert 将菜品目录批量写入向量数据库, 供语义混合搜索使用
func (d *VectorDb) BatchUpsert(ctx context.Context, docs []ItemDoc) (int, error) {
	if global.VectorDb == nil {
		return 0, fmt.Errorf("向量数据库客户端未初始化")
	}
	if global.EmbeddingService == nil {
		return 0, fmt.Errorf("向量化服务未初始化")
	}
	if len(docs) == 0 {
		return 0, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Name
	}

	embeddings, err := global.EmbeddingService.CreateEmbeddings(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("批量创建菜品向量失败: %w", err)
	}
	if len(embeddings) != len(docs) {
		return 0, fmt.Errorf("菜品向量数量不匹配: expected %d, got %d", len(docs), len(embeddings))
	}

	documents := make([]vector.Document, len(docs))
	for i, doc := range docs {
		documents[i] = vector.Document{
			ID: fmt.Sprintf("%s%s", ItemVectorIDPrefix, doc.ItemID),
			Metadata: map[string]interface{}{
				VectorMetadataKeyItemID:  doc.ItemID,
				VectorMetadataKeyName:    doc.Name,
				VectorMetadataKeyStoreID: doc.StoreID,
				VectorMetadataKeyPrice:   doc.Price,
			},
			Embedding: embeddings[i],
		}
	}

	if err := global.VectorDb.Upsert(ctx, d.CollectionName, documents); err != nil {
		return 0, fmt.Errorf("批量更新/插入菜品到向量数据库失败: %w", err)
	}
	return len(docs), nil
}

// Search 按查询文本做语义检索, 无命中时返回 sql.ErrNoRows
func (d *VectorDb) Search(ctx context.Context, query string, topK int) ([]ItemSearchResult, error) {
	if global.VectorDb == nil {
		return nil, fmt.Errorf("向量数据库客户端未初始化")
	}
	if global.EmbeddingService == nil {
		return nil, fmt.Errorf("向量化服务未初始化")
	}

	queryEmbeddings, err := global.EmbeddingService.CreateEmbeddings(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("为查询文本创建向量失败: %w", err)
	}
	if len(queryEmbeddings) == 0 {
		return nil, fmt.Errorf("未能为查询文本生成向量")
	}

	hits, err := global.VectorDb.Query(ctx, d.CollectionName, queryEmbeddings[0], topK)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, sql.ErrNoRows
	}

	var results []ItemSearchResult
	for _, hit := range hits {
		itemID, ok := hit.Metadata.GetString(VectorMetadataKeyItemID)
		if !ok {
			global.Log.Warnf("无法从元数据中解析 item_id: %v", hit.Metadata)
			continue
		}
		name, _ := hit.Metadata.GetString(VectorMetadataKeyName)
		storeID, _ := hit.Metadata.GetString(VectorMetadataKeyStoreID)
		price, _ := hit.Metadata.GetFloat(VectorMetadataKeyPrice)

		results = append(results, ItemSearchResult{
			ItemID:     itemID,
			Name:       name,
			StoreID:    storeID,
			Price:      price,
			Similarity: hit.Similarity,
		})
	}

	if len(results) == 0 {
		return nil, sql.ErrNoRows
	}
	return results, nil
}

// PruneStale 清理目录中已不存在的菜品文档
func (d *VectorDb) PruneStale(ctx context.Context, staleIDs []string) (int, error) {
	if global.VectorDb == nil {
		return 0, fmt.Errorf("向量数据库客户端未初始化")
	}
	return global.VectorDb.DeleteByIDs(ctx, d.CollectionName, staleIDs)
}
