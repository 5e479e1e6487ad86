package enum

type DbType string

const (
	MYSQL  DbType = `mysql`
	SQLITE DbType = `sqlite3`
)

type Msg string

const (
	DefaultSuccessMsg Msg = `ok`
	DefaultFailMsg    Msg = `错误`
)

type ResCode int8

const (
	SuccessCode   ResCode = 0
	ErrorCode     ResCode = 1
	AuthErrorCode ResCode = 2
)

// Intent 用户消息归类后的标准动作类别
type Intent string

const (
	IntentOrderFood   Intent = "order_food"   // 点餐
	IntentTrackOrder  Intent = "track_order"  // 查询订单状态
	IntentCancelOrder Intent = "cancel_order" // 取消订单
	IntentRepeatOrder Intent = "repeat_order" // 重复上一单
	IntentBrowseMenu  Intent = "browse_menu"  // 浏览菜单/商品列表
	IntentSearchStore Intent = "search_store" // 搜索店铺
	IntentStoreInfo   Intent = "store_info"   // 店铺信息(营业时间/地址等)
	IntentComplaint   Intent = "complaint"    // 投诉
	IntentCasualChat  Intent = "casual_chat"  // 闲聊/问候
	IntentSendParcel  Intent = "send_parcel"  // 寄送包裹
	IntentCheckWallet Intent = "check_wallet" // 查询钱包/余额
	IntentUnknown     Intent = "unknown"      // 保留值, 未能识别时使用
)

// Tone 语气分类
type Tone string

const (
	ToneHappy      Tone = "happy"
	ToneAngry      Tone = "angry"
	ToneUrgent     Tone = "urgent"
	ToneNeutral    Tone = "neutral"
	ToneFrustrated Tone = "frustrated"
	TonePolite     Tone = "polite"
	ToneConfused   Tone = "confused"
)

// Sentiment 情感极性
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Provider 标记分类结果由哪条链路产出, 用于可观测性
type Provider string

const (
	ProviderPrimaryModel      Provider = "primary-model"
	ProviderFallbackModel     Provider = "fallback-model"
	ProviderLlm               Provider = "llm"
	ProviderRuleOverride      Provider = "rule-override"
	ProviderHeuristicFallback Provider = "heuristic-fallback"
)

// Endpoint 分类模型端点标识
type Endpoint string

const (
	EndpointPrimary  Endpoint = "primary"
	EndpointFallback Endpoint = "fallback"
)

// LocationSource 位置解析结果的来源, 下游置信度打分按 saved > geocoded > inferred 加权
type LocationSource string

const (
	LocationSourceUserSaved LocationSource = "user_saved"
	LocationSourceInferred  LocationSource = "inferred"
	LocationSourceGeocoded  LocationSource = "geocoded"
)

// SampleSource 训练样本来源
type SampleSource string

const (
	SampleSourceModel     SampleSource = "model"
	SampleSourceLlm       SampleSource = "llm-fallback"
	SampleSourceManual    SampleSource = "manual"
	SampleSourceSynthetic SampleSource = "synthetic"
	SampleSourceImport    SampleSource = "import"
)

// ReviewStatus 训练样本审核状态
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Language 请求的语言提示
type Language string

const (
	LanguageAuto     Language = "auto"
	LanguageHindi    Language = "hi"
	LanguageEnglish  Language = "en"
	LanguageHinglish Language = "hi-en"
)

type LlmSize string

const (
	ModelSmall  LlmSize = "small"
	ModelMedium LlmSize = "medium"
	ModelLarge  LlmSize = "large"
)
