package user

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"gitee.com/taoJie_1/nlu-agent/dao"
	"gitee.com/taoJie_1/nlu-agent/global"
	redisSvc "gitee.com/taoJie_1/nlu-agent/internal/redis"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/db"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
	"gitee.com/taoJie_1/nlu-agent/utils"
)

// CaptureInput 流水线交给采集层的一次分类事实
type CaptureInput struct {
	Text      string
	Language  enum.Language
	UserID    string
	SessionID string
	Result    *common.ClassificationResult
}

type ICaptureService interface {
	// Capture 把一次分类结果沉淀为训练样本。幂等: 同一规范化文本只收录首次。
	// 在流水线旁路的goroutine里调用, 任何失败只记日志。
	Capture(ctx context.Context, in CaptureInput)
}

type captureService struct {
	redis    redisSvc.Service
	stopList map[string]struct{}
}

func NewCaptureService(redis redisSvc.Service) ICaptureService {
	// 无训练价值的高频短语, 收进去只会让样本分布更偏
	stopPhrases := []string{
		"hi", "hello", "hey", "ok", "okay", "hmm", "haan", "ha", "nahi", "no", "yes",
		"thanks", "thank you", "thik hai", "theek hai", "acha", "accha", "k", "hm",
	}
	stopList := make(map[string]struct{}, len(stopPhrases))
	for _, p := range stopPhrases {
		stopList[p] = struct{}{}
	}
	return &captureService{
		redis:    redis,
		stopList: stopList,
	}
}

func (s *captureService) Capture(ctx context.Context, in CaptureInput) {
	if in.Result == nil || dao.DB == nil {
		return
	}

	normalized := utils.NormalizeText(in.Text)
	if !s.worthCapturing(normalized, in.Result) {
		return
	}

	// Redis快速路径: 大部分重复样本在这里被拦下, 不触达数据库。
	// Redis不可用时直接走数据库的唯一索引, 语义不变只是慢一点。
	if s.redis != nil {
		first, err := s.redis.SetNXDedup(ctx, utils.Hash(normalized), 30*24*time.Hour)
		if err == nil && !first {
			return
		}
	}

	entitiesJson, err := json.Marshal(in.Result.Slots.ToMap())
	if err != nil {
		global.Log.Errorf("[capture] 序列化槽位失败: %v", err)
		return
	}

	sample := &db.TrainingSample{
		Text:           strings.TrimSpace(in.Text),
		NormalizedText: normalized,
		Intent:         string(in.Result.Intent),
		Entities:       string(entitiesJson),
		Tone:           string(in.Result.Tone),
		Confidence:     in.Result.Confidence,
		Source:         sourceFor(in.Result.Provider),
		Status:         s.decideStatus(in.Result),
		Language:       string(in.Language),
		UserID:         in.UserID,
		SessionID:      in.SessionID,
	}

	inserted, err := dao.App.TrainingSampleDb.InsertIgnore(sample)
	if err != nil {
		global.Log.Errorf("[capture] 训练样本入库失败: %v", err)
		return
	}
	if inserted {
		global.Log.Debugf("[capture] 收录训练样本: intent=%s status=%s text=%q", sample.Intent, sample.Status, normalized)
	}
}

// worthCapturing 过滤无训练价值的样本
func (s *captureService) worthCapturing(normalized string, result *common.ClassificationResult) bool {
	if normalized == "" || utf8.RuneCountInString(normalized) < 3 {
		return false
	}
	if _, stopped := s.stopList[normalized]; stopped {
		return false
	}
	if result.Intent == enum.IntentUnknown {
		return false
	}
	return result.Confidence >= global.Config.Ai.MinCaptureConfidence
}

// decideStatus 高置信样本自动转入已审核, 其余进人工队列。
// 模型与LLM阈值分开配置: LLM的自报置信度偏乐观, 门槛更高。
func (s *captureService) decideStatus(result *common.ClassificationResult) enum.ReviewStatus {
	switch result.Provider {
	case enum.ProviderPrimaryModel, enum.ProviderFallbackModel, enum.ProviderRuleOverride:
		if result.Confidence >= global.Config.Ai.AutoApproveModelThreshold {
			return enum.ReviewStatusApproved
		}
	case enum.ProviderLlm:
		if result.Confidence >= global.Config.Ai.AutoApproveLlmThreshold {
			return enum.ReviewStatusApproved
		}
	}
	return enum.ReviewStatusPending
}

func sourceFor(provider enum.Provider) enum.SampleSource {
	switch provider {
	case enum.ProviderLlm, enum.ProviderHeuristicFallback:
		return enum.SampleSourceLlm
	default:
		return enum.SampleSourceModel
	}
}
