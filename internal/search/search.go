package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitee.com/taoJie_1/nlu-agent/model/config"
	"github.com/sirupsen/logrus"
)

// StoreHit 搜索索引返回的店铺命中
type StoreHit struct {
	StoreID    string   `json:"store_id"`
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases,omitempty"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	DistanceKm float64  `json:"distance_km"`
	Score      float64  `json:"score"` // 索引侧的相关性分
}

// ItemHit 搜索索引返回的商品/菜品命中
type ItemHit struct {
	ItemID  string  `json:"item_id"`
	Name    string  `json:"name"`
	StoreID string  `json:"store_id"`
	Price   float64 `json:"price"`
	Score   float64 `json:"score"`
}

// GeoFilter 地理过滤/加权参数, nil表示无位置信息
type GeoFilter struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
}

type Service interface {
	// 在搜索索引中模糊搜索店铺, geo 非nil时按距离过滤和加权
	SearchStores(ctx context.Context, query string, geo *GeoFilter) ([]StoreHit, error)
	// 在搜索索引中搜索商品(全文+模糊)
	SearchItems(ctx context.Context, query string, geo *GeoFilter) ([]ItemHit, error)
	// 兜底: 对遗留后端做朴素关键词搜索, 无语义排序
	LegacySearchStores(ctx context.Context, query string) ([]StoreHit, error)
	LegacySearchItems(ctx context.Context, query string) ([]ItemHit, error)
	// 从遗留后端全量拉取菜品目录, 供向量库同步任务使用
	LegacyListItems(ctx context.Context) ([]ItemHit, error)
}

// Client 搜索索引服务的HTTP客户端
type Client struct {
	BaseURL    string
	LegacyURL  string
	Auth       string
	HttpClient *http.Client
	Logger     *logrus.Logger
}

// NewClient 创建搜索服务客户端
func NewClient(cfg config.Search, logger *logrus.Logger) Service {
	return &Client{
		BaseURL:   cfg.Url,
		LegacyURL: cfg.LegacyUrl,
		Auth:      cfg.Auth,
		HttpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		Logger: logger,
	}
}

type searchRequest struct {
	Query string     `json:"query"`
	Kind  string     `json:"kind"` // "store" | "item"
	Geo   *GeoFilter `json:"geo,omitempty"`
	Fuzzy bool       `json:"fuzzy"`
	Limit int        `json:"limit"`
}

type storeSearchResponse struct {
	Hits []StoreHit `json:"hits"`
}

type itemSearchResponse struct {
	Hits []ItemHit `json:"hits"`
}

func (c *Client) SearchStores(ctx context.Context, query string, geo *GeoFilter) ([]StoreHit, error) {
	var resp storeSearchResponse
	err := c.post(ctx, c.BaseURL, "/v1/search", searchRequest{
		Query: query,
		Kind:  "store",
		Geo:   geo,
		Fuzzy: true,
		Limit: 10,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Hits, nil
}

func (c *Client) SearchItems(ctx context.Context, query string, geo *GeoFilter) ([]ItemHit, error) {
	var resp itemSearchResponse
	err := c.post(ctx, c.BaseURL, "/v1/search", searchRequest{
		Query: query,
		Kind:  "item",
		Geo:   geo,
		Fuzzy: true,
		Limit: 10,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Hits, nil
}

func (c *Client) LegacySearchStores(ctx context.Context, query string) ([]StoreHit, error) {
	var resp storeSearchResponse
	err := c.post(ctx, c.LegacyURL, "/api/stores/search", map[string]string{"keyword": query}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Hits, nil
}

func (c *Client) LegacySearchItems(ctx context.Context, query string) ([]ItemHit, error) {
	var resp itemSearchResponse
	err := c.post(ctx, c.LegacyURL, "/api/items/search", map[string]string{"keyword": query}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Hits, nil
}

func (c *Client) LegacyListItems(ctx context.Context) ([]ItemHit, error) {
	var resp itemSearchResponse
	err := c.post(ctx, c.LegacyURL, "/api/items/export", map[string]string{}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Hits, nil
}

// post 通用的请求发送函数
func (c *Client) post(ctx context.Context, baseURL, path string, requestBody, responsePayload interface{}) error {
	if baseURL == "" {
		return fmt.Errorf("搜索服务地址未配置")
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("序列化请求体失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if c.Auth != "" {
		req.Header.Set("Authorization", "Bearer "+c.Auth)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求搜索服务失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取搜索服务响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("搜索服务返回异常状态 %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, responsePayload); err != nil {
		return fmt.Errorf("解析搜索服务响应失败: %w", err)
	}
	return nil
}
