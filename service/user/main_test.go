package user

import (
	"os"
	"testing"
	"time"

	"gitee.com/taoJie_1/nlu-agent/global"
	"github.com/sirupsen/logrus"
)

// TestMain 为本包所有测试准备最小的全局环境:
// 日志输出到丢弃器, 策略阈值使用生产默认值。
func TestMain(m *testing.M) {
	global.Log = logrus.New()
	global.Log.SetOutput(os.Stderr)
	global.Log.SetLevel(logrus.PanicLevel)
	global.Tz = time.UTC

	global.Config.Ai.MaxTextLength = 500
	global.Config.Ai.LlmEscalationThreshold = 0.65
	global.Config.Ai.MinCaptureConfidence = 0.4
	global.Config.Ai.AutoApproveModelThreshold = 0.85
	global.Config.Ai.AutoApproveLlmThreshold = 0.9
	global.Config.Ai.VectorSearchTopK = 5
	global.Config.Ai.VectorSimilarityThreshold = 0.55
	global.Config.Ai.AsyncJobTimeout = 5
	global.Config.Classifier.Timeout = 2
	global.Config.Classifier.WarmupTimeout = 2
	global.Config.Classifier.ProbeInterval = 120
	global.Config.Search.DefaultRadiusKm = 5
	global.Config.Geocode.DefaultLat = 28.6139
	global.Config.Geocode.DefaultLng = 77.2090
	global.Config.Geocode.DefaultCity = "Delhi"

	os.Exit(m.Run())
}
