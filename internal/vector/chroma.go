package vector

import (
	"context"
	"fmt"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
)

// Document 通用的向量文档结构体, 用于在应用内部传递数据
type Document struct {
	ID        string
	Metadata  map[string]interface{}
	Embedding []float32
}

// QueryHit 一次向量查询命中的文档
// Metadata 直接暴露chroma的元数据访问器(GetString/GetFloat)
type QueryHit struct {
	Metadata   chroma.DocumentMetadata
	Similarity float32 // 0-1, 越大越相似
}

// Service 定义了向量数据库服务的接口, 封装了底层客户端
type Service interface {
	Heartbeat(ctx context.Context) error
	Close() error
	// 批量插入或更新文档到指定的集合中
	Upsert(ctx context.Context, collectionName string, documents []Document) error
	// 按查询向量检索最相似的topK个文档
	Query(ctx context.Context, collectionName string, embedding []float32, topK int) ([]QueryHit, error)
	// 根据ID批量删除文档
	DeleteByIDs(ctx context.Context, collectionName string, ids []string) (int, error)
}

type client struct {
	client chroma.Client
}

// NewClient 创建一个新的ChromaDB v2客户端实例
func NewClient(baseURL, authToken string) (Service, error) {
	clientOptions := []chroma.ClientOption{
		chroma.WithBaseURL(baseURL),
	}

	if authToken != "" {
		provider := chroma.NewTokenAuthCredentialsProvider(authToken, chroma.AuthorizationTokenHeader)
		clientOptions = append(clientOptions, chroma.WithAuth(provider))
	}

	cli, err := chroma.NewHTTPClient(clientOptions...)
	if err != nil {
		return nil, err
	}

	return &client{
		client: cli,
	}, nil
}

func (c *client) Heartbeat(ctx context.Context) error {
	return c.client.Heartbeat(ctx)
}

func (c *client) Close() error {
	return c.client.Close()
}

type noOpEmbeddingFunction struct{}

func (f *noOpEmbeddingFunction) EmbedDocuments(ctx context.Context, texts []string) ([]embeddings.Embedding, error) {
	return make([]embeddings.Embedding, len(texts)), nil
}

func (f *noOpEmbeddingFunction) EmbedQuery(ctx context.Context, text string) (embeddings.Embedding, error) {
	return nil, nil
}

func (c *client) getOrCreateCollection(ctx context.Context, name string) (chroma.Collection, error) {
	// 使用自定义的 noOpEmbeddingFunction 来覆盖默认的嵌入函数，防止在静态编译环境下因加载 onnxruntime 而导致 cgo 相关的 SIGSEGV 错误。
	col, err := c.client.GetOrCreateCollection(ctx, name, chroma.WithEmbeddingFunctionCreate(&noOpEmbeddingFunction{}))
	if err != nil {
		return nil, err
	}
	return col, nil
}

func (c *client) Upsert(ctx context.Context, collectionName string, documents []Document) error {
	if len(documents) == 0 {
		return nil
	}

	col, err := c.getOrCreateCollection(ctx, collectionName)
	if err != nil {
		return err
	}

	documentIDs := make([]chroma.DocumentID, len(documents))
	var chromaMetadatas []chroma.DocumentMetadata
	var chromaEmbeddings []embeddings.Embedding

	for i, doc := range documents {
		documentIDs[i] = chroma.DocumentID(doc.ID)
		chromaMetadatas = append(chromaMetadatas, chroma.NewMetadataFromMap(doc.Metadata))
		chromaEmbeddings = append(chromaEmbeddings, embeddings.NewEmbeddingFromFloat32(doc.Embedding))
	}

	return col.Upsert(
		ctx,
		chroma.WithIDs(documentIDs...),
		chroma.WithMetadatas(chromaMetadatas...),
		chroma.WithEmbeddings(chromaEmbeddings...),
	)
}

func (c *client) Query(ctx context.Context, collectionName string, embedding []float32, topK int) ([]QueryHit, error) {
	col, err := c.getOrCreateCollection(ctx, collectionName)
	if err != nil {
		return nil, fmt.Errorf("获取向量集合 '%s' 失败: %w", collectionName, err)
	}

	if topK <= 0 {
		topK = 1
	}

	qr, err := col.Query(
		ctx,
		chroma.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(embedding)),
		chroma.WithNResults(topK),
		chroma.WithIncludeQuery(chroma.IncludeMetadatas, chroma.IncludeDistances),
	)
	if err != nil {
		return nil, fmt.Errorf("在向量数据库中查询失败: %w", err)
	}

	if qr.CountGroups() == 0 {
		return nil, nil
	}

	distancesGroups := qr.GetDistancesGroups()
	metadatasGroups := qr.GetMetadatasGroups()
	// 查询结果按查询向量分组，每组内的结果数量由 WithNResults 决定
	if len(distancesGroups) < 1 || len(metadatasGroups) < 1 {
		return nil, nil
	}

	distances := distancesGroups[0]
	metadatas := metadatasGroups[0]

	var hits []QueryHit
	for i := 0; i < len(distances) && i < len(metadatas); i++ {
		// Chroma返回的是距离（如L2距离），值越小越相似。
		// 将其转换为一个0到1之间的相似度分数，值越大越相似。
		similarity := float32(1.0 / (1.0 + distances[i]))

		hits = append(hits, QueryHit{
			Metadata:   metadatas[i],
			Similarity: similarity,
		})
	}

	return hits, nil
}

func (c *client) DeleteByIDs(ctx context.Context, collectionName string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	col, err := c.getOrCreateCollection(ctx, collectionName)
	if err != nil {
		return 0, err
	}

	docIDs := make([]chroma.DocumentID, len(ids))
	for i, id := range ids {
		docIDs[i] = chroma.DocumentID(id)
	}

	if err := col.Delete(ctx, chroma.WithIDsDelete(docIDs...)); err != nil {
		return 0, err
	}

	return len(ids), nil
}
