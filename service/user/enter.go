package user

import (
	"gitee.com/taoJie_1/nlu-agent/global"
)

type ServiceGroup struct {
	HealthService     IHealthService
	RuleService       IRuleService
	ClassifyService   IClassifyService
	CatalogService    ICatalogService
	LlmExtractService ILlmExtractService
	SlotService       ISlotService
	ToneService       IToneService
	CaptureService    ICaptureService
	PipelineService   IPipelineService
	ResolveService    IResolveService
	PreferenceService IPreferenceService
}

// NewServiceGroup 按依赖顺序组装全部用户侧服务。
// 必须在 global 里的客户端(分类/LLM/搜索/地理/Redis)就绪之后调用。
func NewServiceGroup() ServiceGroup {
	rules := NewRuleService()
	health := NewHealthService(global.ClassifierService)
	classify := NewClassifyService(global.ClassifierService, health, rules)
	catalog := NewCatalogService()
	llmExtract := NewLlmExtractService(global.LlmService, catalog, rules)
	slots := NewSlotService()
	tone := NewToneService()
	capture := NewCaptureService(global.RedisClient)
	pipeline := NewPipelineService(rules, classify, llmExtract, slots, tone, capture, global.RedisClient)
	preference := NewPreferenceService()
	resolve := NewResolveService(global.SearchService, global.GeocodeService, preference)

	return ServiceGroup{
		HealthService:     health,
		RuleService:       rules,
		ClassifyService:   classify,
		CatalogService:    catalog,
		LlmExtractService: llmExtract,
		SlotService:       slots,
		ToneService:       tone,
		CaptureService:    capture,
		PipelineService:   pipeline,
		ResolveService:    resolve,
		PreferenceService: preference,
	}
}
