package global

import (
	"time"

	"gitee.com/taoJie_1/nlu-agent/internal/classifier"
	"gitee.com/taoJie_1/nlu-agent/internal/embedding"
	"gitee.com/taoJie_1/nlu-agent/internal/geocode"
	"gitee.com/taoJie_1/nlu-agent/internal/llm"
	"gitee.com/taoJie_1/nlu-agent/internal/oss"
	"gitee.com/taoJie_1/nlu-agent/internal/redis"
	"gitee.com/taoJie_1/nlu-agent/internal/search"
	"gitee.com/taoJie_1/nlu-agent/internal/vector"
	"gitee.com/taoJie_1/nlu-agent/model/config"
	"github.com/sirupsen/logrus"
)

const Version = "1.2.0"

// 全局变量
// 业务逻辑禁止修改
var (
	Config            *config.Config = new(config.Config) //指针类型, 给与其内存空间
	Log               *logrus.Logger
	Tz                *time.Location
	RedisClient       redis.Service
	LlmService        llm.Service
	EmbeddingService  embedding.Service
	VectorDb          vector.Service
	ClassifierService classifier.Service
	SearchService     search.Service
	GeocodeService    geocode.Service
	OssService        oss.Service
)
