package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gitee.com/taoJie_1/nlu-agent/global"
	redisSvc "gitee.com/taoJie_1/nlu-agent/internal/redis"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
	"gitee.com/taoJie_1/nlu-agent/utils"
)

type IPipelineService interface {
	// Process 完整的分类流水线: 规则短路 -> 统计模型 -> 低置信时LLM兜底 ->
	// 槽位补全 -> 语气分析 -> 异步采集训练样本。
	Process(ctx context.Context, req *common.ClassificationRequest) (*common.ClassificationResult, error)
}

type pipelineService struct {
	rules      IRuleService
	classify   IClassifyService
	llmExtract ILlmExtractService
	slots      ISlotService
	tone       IToneService
	capture    ICaptureService
	redis      redisSvc.Service
}

func NewPipelineService(
	rules IRuleService,
	classify IClassifyService,
	llmExtract ILlmExtractService,
	slots ISlotService,
	tone IToneService,
	capture ICaptureService,
	redis redisSvc.Service,
) IPipelineService {
	return &pipelineService{
		rules:      rules,
		classify:   classify,
		llmExtract: llmExtract,
		slots:      slots,
		tone:       tone,
		capture:    capture,
		redis:      redis,
	}
}

func (s *pipelineService) Process(ctx context.Context, req *common.ClassificationRequest) (*common.ClassificationResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, errors.New("消息内容不能为空")
	}
	if max := int(global.Config.Ai.MaxTextLength); max > 0 && utf8.RuneCountInString(text) > max {
		return nil, fmt.Errorf("消息长度超出上限(%d字符)", max)
	}

	language := enum.Language(req.Language)
	if language == "" {
		language = enum.LanguageAuto
	}

	start := time.Now()

	// 缓存命中直接返回。键包含语言提示: 同一文本在不同语言提示下可能有不同结果
	cacheKey := utils.Hash(string(language) + "|" + strings.ToLower(text))
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		cached.LatencyMs = time.Since(start).Milliseconds()
		return cached, nil
	}

	result := s.classifyOnce(ctx, text, language, &req.Context)

	// 槽位补全: 模式抽取只填模型/LLM没给出的槽位
	result.Slots = s.slots.Merge(result.Slots, s.slots.Extract(text, result.Intent))
	result.Entities = result.Slots.ToMap()

	// 语气/情感永远由确定性分析给出, 模型的tone字段只在确定性结果为neutral时参考
	toneResult := s.tone.Analyze(text)
	if toneResult.Tone != enum.ToneNeutral || result.Tone == "" {
		result.Tone = toneResult.Tone
	}
	result.Sentiment = toneResult.Sentiment
	if toneResult.Urgency > result.Urgency {
		result.Urgency = toneResult.Urgency
	}

	result.Confidence = utils.Clamp01(result.Confidence)
	if result.Intent == "" {
		result.Intent = enum.IntentUnknown
	}
	result.LatencyMs = time.Since(start).Milliseconds()

	s.cacheSet(ctx, cacheKey, result)
	s.afterClassify(text, language, req, result)

	return result, nil
}

// classifyOnce 决定这次请求走哪条分类链路
func (s *pipelineService) classifyOnce(ctx context.Context, text string, language enum.Language, reqCtx *common.RequestContext) *common.ClassificationResult {
	// 规则层最先看: 命中则模型和LLM都不用调
	if match, ok := s.rules.Match(text); ok {
		return &common.ClassificationResult{
			Intent:     match.Intent,
			Confidence: match.Confidence,
			Provider:   enum.ProviderRuleOverride,
			Reasoning:  match.Reasoning,
		}
	}

	result := s.classify.Classify(ctx, text)

	// 低置信时升级到LLM, 取两者中更有把握的那个
	if result.Confidence < global.Config.Ai.LlmEscalationThreshold {
		escalated := s.llmExtract.Extract(ctx, text, language, reqCtx)
		if escalated.Confidence > result.Confidence {
			// 模型抽到的槽位仍然保留, LLM的槽位优先
			escalated.Slots = s.slots.Merge(escalated.Slots, result.Slots)
			return escalated
		}
	}
	return result
}

// afterClassify 请求返回路径之外的旁路动作, 全部不阻塞也不影响结果
func (s *pipelineService) afterClassify(text string, language enum.Language, req *common.ClassificationRequest, result *common.ClassificationResult) {
	snapshot := *result

	go func() {
		defer func() {
			if r := recover(); r != nil {
				global.Log.Errorf("[pipeline] 旁路任务panic: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(global.Config.Ai.AsyncJobTimeout)*time.Second)
		defer cancel()

		s.capture.Capture(ctx, CaptureInput{
			Text:      text,
			Language:  language,
			UserID:    req.UserID,
			SessionID: req.SessionID,
			Result:    &snapshot,
		})

		if s.redis != nil && req.SessionID != "" {
			ttl := utils.GetTTLWithJitter(global.Config.Redis.ContextTTL)
			err := s.redis.AppendContext(ctx, req.SessionID, ttl, common.LlmMessage{
				Role:    "user",
				Content: text,
			})
			if err != nil {
				global.Log.Warnf("[pipeline] 更新会话上下文失败: %v", err)
			}
		}
	}()
}

func (s *pipelineService) cacheGet(ctx context.Context, key string) *common.ClassificationResult {
	if s.redis == nil {
		return nil
	}
	var cached common.ClassificationResult
	if err := s.redis.GetDetection(ctx, key, &cached); err != nil {
		if !errors.Is(err, redisSvc.ErrNil) {
			global.Log.Warnf("[pipeline] 读取检测缓存失败: %v", err)
		}
		return nil
	}
	return &cached
}

func (s *pipelineService) cacheSet(ctx context.Context, key string, result *common.ClassificationResult) {
	if s.redis == nil {
		return
	}
	ttl := utils.GetTTLWithJitter(global.Config.Redis.DetectionCacheTTL)
	if err := s.redis.SetDetection(ctx, key, result, ttl); err != nil {
		global.Log.Warnf("[pipeline] 写入检测缓存失败: %v", err)
	}
}
