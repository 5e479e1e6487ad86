package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitee.com/taoJie_1/nlu-agent/model/config"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
	"github.com/sirupsen/logrus"
)

// Result 归一化后的分类模型输出
type Result struct {
	Intent     string
	Confidence float64
	Tone       string
	Slots      map[string]string
}

type Service interface {
	// 调用指定端点进行一次分类
	Classify(ctx context.Context, endpoint enum.Endpoint, text string) (*Result, error)
	// 探测指定端点是否健康, 依次尝试 /health 和 /healthz 两个路径
	Probe(ctx context.Context, endpoint enum.Endpoint) error
	// 发起一次丢弃结果的推理调用, 用于暖机; 超时比普通分类宽松得多
	Warmup(ctx context.Context, endpoint enum.Endpoint) error
}

type client struct {
	log          *logrus.Logger
	cfg          config.Classifier
	httpClient   *http.Client // 普通分类调用
	warmupClient *http.Client // 暖机调用, 容忍GPU冷启动
}

// NewClient 创建分类模型客户端
func NewClient(log *logrus.Logger, cfg config.Classifier) Service {
	return &client{
		log: log,
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		warmupClient: &http.Client{
			Timeout: time.Duration(cfg.WarmupTimeout) * time.Second,
		},
	}
}

func (c *client) baseURL(endpoint enum.Endpoint) string {
	if endpoint == enum.EndpointFallback {
		return c.cfg.FallbackUrl
	}
	return c.cfg.PrimaryUrl
}

type classifyRequest struct {
	Text string `json:"text"`
}

func (c *client) Classify(ctx context.Context, endpoint enum.Endpoint, text string) (*Result, error) {
	raw, err := c.post(ctx, c.httpClient, endpoint, "/classify", classifyRequest{Text: text})
	if err != nil {
		return nil, err
	}

	result, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("归一化分类响应失败[cx81p]: %w", err)
	}
	return result, nil
}

func (c *client) Warmup(ctx context.Context, endpoint enum.Endpoint) error {
	warmupText := c.cfg.WarmupText
	if warmupText == "" {
		warmupText = "hello"
	}
	_, err := c.post(ctx, c.warmupClient, endpoint, "/classify", classifyRequest{Text: warmupText})
	return err
}

// healthResponse 兼容两代健康检查接口的字段
type healthResponse struct {
	Status        string `json:"status"`
	EncoderLoaded bool   `json:"encoder_loaded"`
	ModelLoaded   bool   `json:"model_loaded"`
}

func (c *client) Probe(ctx context.Context, endpoint enum.Endpoint) error {
	var lastErr error
	// 旧服务只有 /health, 新服务是 /healthz, 按序尝试
	for _, path := range []string{"/health", "/healthz"} {
		body, err := c.get(ctx, endpoint, path)
		if err != nil {
			lastErr = err
			continue
		}

		var hr healthResponse
		if err := json.Unmarshal(body, &hr); err != nil {
			lastErr = fmt.Errorf("解析健康检查响应失败: %w", err)
			continue
		}

		if hr.Status == "ok" || hr.Status == "healthy" {
			return nil
		}
		if hr.EncoderLoaded && hr.ModelLoaded {
			return nil
		}
		lastErr = fmt.Errorf("端点 %s 报告不健康: %s", endpoint, string(body))
	}
	return lastErr
}

func (c *client) post(ctx context.Context, hc *http.Client, endpoint enum.Endpoint, path string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL(endpoint)+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if c.cfg.Auth != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Auth)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求分类服务失败 (endpoint: %s): %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取分类服务响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("分类服务返回异常状态 %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *client) get(ctx context.Context, endpoint enum.Endpoint, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL(endpoint)+path, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求分类服务失败 (endpoint: %s): %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("健康检查返回异常状态 %d", resp.StatusCode)
	}
	return body, nil
}
