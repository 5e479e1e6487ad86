package user

import (
	"sync"
	"time"

	"gitee.com/taoJie_1/nlu-agent/dao"
	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// DefaultIntentCatalog 内置意图表。数据库目录不可用时的静态兜底,
// 也是空库首次启动时的种子数据。
var DefaultIntentCatalog = []common.IntentCatalogEntry{
	{Name: string(enum.IntentOrderFood), Description: "user wants to order food or drinks for delivery"},
	{Name: string(enum.IntentTrackOrder), Description: "user asks where an existing order is or when it will arrive"},
	{Name: string(enum.IntentCancelOrder), Description: "user wants to cancel an order that was placed"},
	{Name: string(enum.IntentRepeatOrder), Description: "user wants to reorder the same thing as last time"},
	{Name: string(enum.IntentBrowseMenu), Description: "user wants to see the menu or what is available"},
	{Name: string(enum.IntentSearchStore), Description: "user is looking for a shop, restaurant or vendor"},
	{Name: string(enum.IntentStoreInfo), Description: "user asks about a store's timing, location or contact"},
	{Name: string(enum.IntentComplaint), Description: "user complains about an order, delivery or service quality"},
	{Name: string(enum.IntentCasualChat), Description: "greetings, small talk, anything not related to commerce"},
	{Name: string(enum.IntentSendParcel), Description: "user wants to send a package or item to someone"},
	{Name: string(enum.IntentCheckWallet), Description: "user asks about wallet balance, refunds or payments"},
}

type ICatalogService interface {
	// Get 返回当前启用的意图目录, 数据库失败时回退到内置表
	Get() []common.IntentCatalogEntry
	// KnownIntent 判断名称是否在目录中
	KnownIntent(name string) bool
	// Invalidate 使缓存失效, 下次Get时重新读库(目录变更/定时刷新时调用)
	Invalidate()
}

// catalogService 读穿缓存。目录变化频率极低, 但每次LLM兜底都要用它拼提示词,
// 不能每个请求都打一次库。
type catalogService struct {
	mu        sync.RWMutex
	entries   []common.IntentCatalogEntry
	names     map[string]struct{}
	expiresAt time.Time
	ttl       time.Duration
}

func NewCatalogService() ICatalogService {
	return &catalogService{ttl: 30 * time.Minute}
}

func (c *catalogService) Get() []common.IntentCatalogEntry {
	c.mu.RLock()
	if len(c.entries) > 0 && time.Now().Before(c.expiresAt) {
		entries := c.entries
		c.mu.RUnlock()
		return entries
	}
	c.mu.RUnlock()

	return c.refresh()
}

func (c *catalogService) KnownIntent(name string) bool {
	c.mu.RLock()
	if len(c.names) > 0 && time.Now().Before(c.expiresAt) {
		_, ok := c.names[name]
		c.mu.RUnlock()
		return ok
	}
	c.mu.RUnlock()

	c.refresh()

	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.names[name]
	return ok
}

func (c *catalogService) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiresAt = time.Time{}
}

func (c *catalogService) refresh() []common.IntentCatalogEntry {
	entries, err := c.load()
	if err != nil || len(entries) == 0 {
		if err != nil {
			global.Log.Warnf("[catalog] 读取意图目录失败, 回退内置表: %v", err)
		}
		entries = DefaultIntentCatalog
	}

	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name] = struct{}{}
	}

	c.mu.Lock()
	c.entries = entries
	c.names = names
	c.expiresAt = time.Now().Add(c.ttl)
	c.mu.Unlock()
	return entries
}

func (c *catalogService) load() ([]common.IntentCatalogEntry, error) {
	if dao.DB == nil {
		return DefaultIntentCatalog, nil
	}
	return dao.App.IntentCatalogDb.GetActiveList()
}
