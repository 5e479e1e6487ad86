package user

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/internal/llm"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
	"gitee.com/taoJie_1/nlu-agent/utils"
)

type ILlmExtractService interface {
	// Extract 用LLM做意图+实体联合抽取。规则层短路优先, LLM失败时退到关键词启发式,
	// 永远返回一个可用结果, 不向上抛错。
	Extract(ctx context.Context, text string, language enum.Language, reqCtx *common.RequestContext) *common.ClassificationResult
}

type llmExtractService struct {
	llm     llm.Service
	catalog ICatalogService
	rules   IRuleService

	// 启发式兜底用的意图关键词表, 与规则层独立: 这里追求召回, 规则层追求准确
	intentKeywords map[enum.Intent][]string
}

func NewLlmExtractService(llmSvc llm.Service, catalog ICatalogService, rules IRuleService) ILlmExtractService {
	return &llmExtractService{
		llm:     llmSvc,
		catalog: catalog,
		rules:   rules,
		intentKeywords: map[enum.Intent][]string{
			enum.IntentOrderFood:   {"order", "khana", "bhukh", "hungry", "mangwa", "chahiye", "deliver"},
			enum.IntentTrackOrder:  {"track", "kahan", "status", "kab aayega", "pahuncha", "late"},
			enum.IntentCancelOrder: {"cancel", "cancle", "band karo", "nahi chahiye", "mat bhejo"},
			enum.IntentRepeatOrder: {"same", "repeat", "wahi wala", "phir se wahi", "last time"},
			enum.IntentBrowseMenu:  {"menu", "kya kya", "list", "options", "milta hai"},
			enum.IntentSearchStore: {"dukaan", "shop", "store", "restaurant", "kirana", "medical"},
			enum.IntentStoreInfo:   {"timing", "khula", "open", "band", "address", "contact", "number"},
			enum.IntentComplaint:   {"complaint", "shikayat", "refund", "galat", "wrong", "thanda", "kharab"},
			enum.IntentCasualChat:  {"hi", "hello", "namaste", "kaise ho", "good morning"},
			enum.IntentSendParcel:  {"parcel", "bhejna", "courier", "pickup", "drop", "package"},
			enum.IntentCheckWallet: {"wallet", "balance", "paisa", "refund aaya", "payment"},
		},
	}
}

func (s *llmExtractService) Extract(ctx context.Context, text string, language enum.Language, reqCtx *common.RequestContext) *common.ClassificationResult {
	// 规则层短路: 高频模式不需要任何模型
	if match, ok := s.rules.Match(text); ok {
		return &common.ClassificationResult{
			Intent:     match.Intent,
			Confidence: match.Confidence,
			Provider:   enum.ProviderRuleOverride,
			Reasoning:  match.Reasoning,
		}
	}

	prompt := s.buildPrompt(language, reqCtx)
	raw, err := s.llm.ChatCompletion(ctx, enum.ModelSmall, prompt, text, s.historyFrom(reqCtx), 0.1)
	if err != nil {
		global.Log.Warnf("[llm-extract] LLM调用失败, 退到关键词启发式: %v", err)
		return s.heuristicExtract(text, "")
	}

	result, err := s.parseResponse(raw)
	if err != nil {
		global.Log.Warnf("[llm-extract] LLM响应不是合法JSON, 退到关键词启发式: %v; raw=%q", err, utils.Truncate(raw, 200))
		return s.heuristicExtract(text, raw)
	}
	return result
}

// buildPrompt 基础抽取提示词 + 当前意图目录 + 会话上下文提示。
// 目录来自数据库(带静态兜底), 运营新增意图后无需发版即可被LLM识别。
func (s *llmExtractService) buildPrompt(language enum.Language, reqCtx *common.RequestContext) string {
	var sb strings.Builder
	sb.WriteString(string(enum.SystemPromptExtractBase))

	sb.WriteString("\n\nKnown intents (use exactly one of these names):\n")
	for _, entry := range s.catalog.Get() {
		sb.WriteString("- ")
		sb.WriteString(entry.Name)
		sb.WriteString(": ")
		sb.WriteString(entry.Description)
		sb.WriteString("\n")
	}
	sb.WriteString("- ")
	sb.WriteString(string(enum.IntentUnknown))
	sb.WriteString(": none of the above fits\n")

	if language == enum.LanguageHindi || language == enum.LanguageHinglish {
		sb.WriteString("\n")
		sb.WriteString(string(enum.SystemPromptLanguageHint))
		sb.WriteString(string(language))
	}

	if reqCtx != nil {
		if reqCtx.ActiveFlow != "" {
			sb.WriteString(fmt.Sprintf("\nThe user is currently in the middle of the %q flow.", reqCtx.ActiveFlow))
		}
		if reqCtx.LastPrompt != "" {
			sb.WriteString(fmt.Sprintf("\nThe assistant's last question to the user was: %q", reqCtx.LastPrompt))
		}
	}
	return sb.String()
}

func (s *llmExtractService) historyFrom(reqCtx *common.RequestContext) []common.LlmMessage {
	if reqCtx == nil {
		return nil
	}
	return reqCtx.History
}

// parseResponse 严格解析LLM的JSON输出。容忍markdown代码块包裹和前后缀废话,
// 但JSON本体必须合法。
func (s *llmExtractService) parseResponse(raw string) (*common.ClassificationResult, error) {
	jsonText := extractJsonBlock(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("响应中未找到JSON对象")
	}

	var extraction common.LlmExtraction
	if err := json.Unmarshal([]byte(jsonText), &extraction); err != nil {
		return nil, err
	}
	if extraction.Intent == "" {
		return nil, fmt.Errorf("JSON中缺少intent字段")
	}

	intent := enum.Intent(extraction.Intent)
	if !s.catalog.KnownIntent(extraction.Intent) && intent != enum.IntentUnknown {
		global.Log.Warnf("[llm-extract] LLM返回目录外的意图 %q, 按unknown处理", extraction.Intent)
		intent = enum.IntentUnknown
	}

	tone := enum.Tone(extraction.Tone)
	if tone == "" {
		tone = enum.ToneNeutral
	}

	return &common.ClassificationResult{
		Intent:               intent,
		Confidence:           utils.Clamp01(extraction.Confidence),
		Slots:                slotsFromMap(extraction.Entities),
		Tone:                 tone,
		Urgency:              utils.Clamp01(extraction.Urgency),
		Provider:             enum.ProviderLlm,
		Reasoning:            extraction.Reasoning,
		NeedsClarification:   extraction.NeedsClarification,
		ClarificationOptions: extraction.ClarificationOptions,
	}, nil
}

// heuristicExtract 最后一层兜底: 先在LLM的自然语言回复里找意图名,
// 再对用户原文做关键词重叠计分。置信度固定0.6, 明确标记为启发式来源。
func (s *llmExtractService) heuristicExtract(text, llmReply string) *common.ClassificationResult {
	if llmReply != "" {
		for intent := range s.intentKeywords {
			if strings.Contains(llmReply, string(intent)) {
				return &common.ClassificationResult{
					Intent:     intent,
					Confidence: 0.6,
					Provider:   enum.ProviderHeuristicFallback,
					Reasoning:  "intent name found in unstructured llm reply",
				}
			}
		}
	}

	normalized := strings.ToLower(text)
	var best enum.Intent
	var bestHits int
	for intent, keywords := range s.intentKeywords {
		hits := countHits(normalized, keywords)
		if hits > bestHits {
			best, bestHits = intent, hits
		}
	}
	if bestHits == 0 {
		return &common.ClassificationResult{
			Intent:     enum.IntentUnknown,
			Confidence: 0,
			Provider:   enum.ProviderHeuristicFallback,
			Reasoning:  "no keyword overlap with any known intent",
		}
	}
	return &common.ClassificationResult{
		Intent:     best,
		Confidence: 0.6,
		Provider:   enum.ProviderHeuristicFallback,
		Reasoning:  fmt.Sprintf("keyword overlap with %s (%d hits)", best, bestHits),
	}
}

// extractJsonBlock 剥离```json围栏并截取首尾花括号之间的内容
func extractJsonBlock(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if idx := strings.Index(cleaned, "```"); idx >= 0 {
		cleaned = cleaned[idx+3:]
		cleaned = strings.TrimPrefix(cleaned, "json")
		if end := strings.Index(cleaned, "```"); end >= 0 {
			cleaned = cleaned[:end]
		}
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return ""
	}
	return cleaned[start : end+1]
}
