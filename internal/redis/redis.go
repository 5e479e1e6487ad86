package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gitee.com/taoJie_1/nlu-agent/model/common"
	"github.com/go-redis/redis/v8"
)

// ErrNil 缓存未命中
var ErrNil = redis.Nil

// 键前缀, 统一维护避免冲突
const (
	KeyPrefixDetection = "nlu:detect:"  // 重复检测查询的结果缓存
	KeyPrefixContext   = "nlu:ctx:"     // 会话上下文(短历史)
	KeyPrefixDedup     = "nlu:dedup:"   // 训练样本去重快速路径
)

type Service interface {
	Ping(ctx context.Context) error
	Close() error

	// GetDetection 读取检测查询缓存, 未命中返回 ErrNil
	GetDetection(ctx context.Context, key string, dest interface{}) error
	// SetDetection 写入检测查询缓存, 仅为性能优化, 过期了也无正确性问题
	SetDetection(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// GetContext 读取会话的短历史
	GetContext(ctx context.Context, sessionID string) ([]common.LlmMessage, error)
	// AppendContext 追加消息到会话历史并刷新TTL
	AppendContext(ctx context.Context, sessionID string, ttl time.Duration, messages ...common.LlmMessage) error

	// SetNXDedup 训练样本去重的快速路径; true表示首次出现
	SetNXDedup(ctx context.Context, textHash string, ttl time.Duration) (bool, error)
}

type client struct {
	rdb *redis.Client
}

// NewClient 创建一个新的Redis客户端实例
func NewClient(addr, password string, db int) (Service, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10, // 连接池大小
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &client{rdb: rdb}, nil
}

func (c *client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *client) Close() error {
	return c.rdb.Close()
}

func (c *client) GetDetection(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, KeyPrefixDetection+key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *client) SetDetection(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, KeyPrefixDetection+key, data, ttl).Err()
}

func (c *client) GetContext(ctx context.Context, sessionID string) ([]common.LlmMessage, error) {
	data, err := c.rdb.Get(ctx, KeyPrefixContext+sessionID).Bytes()
	if err != nil {
		return nil, err
	}

	var history []common.LlmMessage
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("解析会话历史失败: %w", err)
	}
	return history, nil
}

func (c *client) AppendContext(ctx context.Context, sessionID string, ttl time.Duration, messages ...common.LlmMessage) error {
	if len(messages) == 0 {
		return nil
	}

	history, err := c.GetContext(ctx, sessionID)
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	history = append(history, messages...)

	// 只保留最近的若干条, 上下文只是提示, 不是完整存档
	const maxContextMessages = 10
	if len(history) > maxContextMessages {
		history = history[len(history)-maxContextMessages:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, KeyPrefixContext+sessionID, data, ttl).Err()
}

func (c *client) SetNXDedup(ctx context.Context, textHash string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, KeyPrefixDedup+textHash, "1", ttl).Result()
}
