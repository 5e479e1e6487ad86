package initialize

import (
	"flag"
	"fmt"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/config"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

var (
	Conf string
	Act  string
)

func init() {
	flag.StringVar(&Conf, "c", "", "choose config file.")
	flag.StringVar(&Act, "a", "", `行为,默认为空,即启动服务; "export": 导出训练数据; "stats": 语料统计; "catalog": 同步菜品目录;`)
}

// New 创建一个新的初始化器，并加载配置文件
func New() *Initializer {
	var configPath string
	if gin.Mode() != gin.TestMode {
		flag.Parse()
		if Conf != "" {
			configPath = Conf
		}
	}
	if configPath == "" {
		configPath = `config.yaml`
	}

	initializer := &Initializer{}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		panic("读取配置失败[u9ij]: " + configPath + err.Error())
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("配置文件变化[djiads]: ", e.Name)
		oldConfig := global.Config.DeepCopy()
		if err := v.Unmarshal(global.Config); err != nil {
			fmt.Println(err)
			return
		}
		handleConfig(global.Config)
		initializer.HandleConfigChange(oldConfig, global.Config)
	})

	if err := v.Unmarshal(global.Config); err != nil {
		panic("出错[dhfal]: " + err.Error())
	}

	handleConfig(global.Config)

	return initializer
}

// handleConfig 处理和设置配置的默认值
func handleConfig(c *config.Config) {
	if c.ProjectName == "" {
		c.ProjectName = "NLU意图服务"
	}
	if c.GinAddr == "" {
		c.GinAddr = ":80"
	}
	if c.GinLogPath == "" {
		c.GinLogPath = "log/gin.log"
	}
	if c.RunLogPath == "" {
		c.RunLogPath = "log/run.log"
	}
	if c.Tz == "" {
		c.Tz = "Asia/Kolkata"
	}
	if len(c.Cors) == 0 {
		c.Cors = []string{"*"}
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite3"
	}
	if c.Database.SqlitePath == "" {
		c.Database.SqlitePath = "data.db"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Redis.ContextTTL == 0 {
		c.Redis.ContextTTL = 3600 // 会话上下文默认1小时
	}
	if c.Redis.DetectionCacheTTL == 0 {
		c.Redis.DetectionCacheTTL = 600
	}
	if c.Classifier.Timeout == 0 {
		c.Classifier.Timeout = 8
	}
	if c.Classifier.WarmupTimeout == 0 {
		c.Classifier.WarmupTimeout = 30 // GPU冷启动可达数十秒
	}
	if c.Classifier.ProbeInterval == 0 {
		c.Classifier.ProbeInterval = 120
	}
	if c.Classifier.WarmupText == "" {
		c.Classifier.WarmupText = "namaste"
	}
	for i := range c.Llm {
		if c.Llm[i].Timeout == 0 {
			c.Llm[i].Timeout = 10
		}
	}
	if c.LlmEmbedding.Timeout == 0 {
		c.LlmEmbedding.Timeout = 5
	}
	if c.LlmEmbedding.BatchTimeout == 0 {
		c.LlmEmbedding.BatchTimeout = 60
	}
	if c.VectorDb.CollectionName == "" {
		c.VectorDb.CollectionName = "catalog_items"
	}
	if c.Search.Timeout == 0 {
		c.Search.Timeout = 5
	}
	if c.Search.DefaultRadiusKm == 0 {
		c.Search.DefaultRadiusKm = 5
	}
	if c.Geocode.Timeout == 0 {
		c.Geocode.Timeout = 5
	}
	if c.Ai.MaxTextLength == 0 {
		c.Ai.MaxTextLength = 500
	}
	if c.Ai.LlmEscalationThreshold == 0 {
		c.Ai.LlmEscalationThreshold = 0.65
	}
	if c.Ai.RuleOverrideConfidence == 0 {
		c.Ai.RuleOverrideConfidence = 0.88
	}
	if c.Ai.MinCaptureConfidence == 0 {
		c.Ai.MinCaptureConfidence = 0.4
	}
	if c.Ai.AutoApproveModelThreshold == 0 {
		c.Ai.AutoApproveModelThreshold = 0.85
	}
	if c.Ai.AutoApproveLlmThreshold == 0 {
		c.Ai.AutoApproveLlmThreshold = 0.9
	}
	if c.Ai.VectorSearchTopK == 0 {
		c.Ai.VectorSearchTopK = 5
	}
	if c.Ai.VectorSimilarityThreshold == 0 {
		c.Ai.VectorSimilarityThreshold = 0.55
	}
	if c.Ai.AsyncJobTimeout == 0 {
		c.Ai.AsyncJobTimeout = 30
	}
	if c.Ai.CatalogReloadDebounce == 0 {
		c.Ai.CatalogReloadDebounce = 10
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "export"
	}
}
