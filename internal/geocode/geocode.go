package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gitee.com/taoJie_1/nlu-agent/model/config"
	"github.com/sirupsen/logrus"
)

// Point 一次地理编码的结果
type Point struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// SavedAddress 用户保存的地址
type SavedAddress struct {
	Type    string  `json:"type"` // "home" | "office" | "other"
	Label   string  `json:"label"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type Service interface {
	// 把自由文本地址编码为坐标
	Geocode(ctx context.Context, text string) (*Point, error)
	// 查询用户保存的地址列表
	SavedAddresses(ctx context.Context, userID string) ([]SavedAddress, error)
}

// Client 地理服务的HTTP客户端
type Client struct {
	BaseURL         string
	SavedAddressURL string
	Auth            string
	HttpClient      *http.Client
	Logger          *logrus.Logger
}

// NewClient 创建地理服务客户端
func NewClient(cfg config.Geocode, logger *logrus.Logger) Service {
	return &Client{
		BaseURL:         cfg.Url,
		SavedAddressURL: cfg.SavedAddressUrl,
		Auth:            cfg.Auth,
		HttpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		Logger: logger,
	}
}

func (c *Client) Geocode(ctx context.Context, text string) (*Point, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("地理编码服务地址未配置")
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/v1/geocode?q=%s", c.BaseURL, url.QueryEscape(text)))
	if err != nil {
		return nil, err
	}

	var p Point
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("解析地理编码响应失败: %w", err)
	}
	if p.Lat == 0 && p.Lng == 0 {
		return nil, fmt.Errorf("地理编码无结果: %s", text)
	}
	return &p, nil
}

func (c *Client) SavedAddresses(ctx context.Context, userID string) ([]SavedAddress, error) {
	if c.SavedAddressURL == "" {
		return nil, fmt.Errorf("保存地址服务地址未配置")
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/api/users/%s/addresses", c.SavedAddressURL, url.PathEscape(userID)))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Addresses []SavedAddress `json:"addresses"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("解析保存地址响应失败: %w", err)
	}
	return resp.Addresses, nil
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	if c.Auth != "" {
		req.Header.Set("Authorization", "Bearer "+c.Auth)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求地理服务失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取地理服务响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("地理服务返回异常状态 %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
