package config

type Database struct {
	Type          string `json:"type" mapstructure:"type" yaml:"type"`
	SqlitePath    string `json:"sqlite_path" mapstructure:"sqlite_path" yaml:"sqlite_path"`
	MysqlHost     string `json:"mysql_host" mapstructure:"mysql_host" yaml:"mysql_host"`
	MysqlPort     string `json:"mysql_port" mapstructure:"mysql_port" yaml:"mysql_port"`
	MysqlDbname   string `json:"mysql_dbname" mapstructure:"mysql_dbname" yaml:"mysql_dbname"`
	MysqlUsername string `json:"mysql_username" mapstructure:"mysql_username" yaml:"mysql_username"`
	MysqlPassword string `json:"mysql_password" mapstructure:"mysql_password" yaml:"mysql_password"`
}

type Redis struct {
	Addr              string `json:"addr" mapstructure:"addr" yaml:"addr"`
	Password          string `json:"password" mapstructure:"password" yaml:"password"`
	DB                int64  `json:"db" mapstructure:"db" yaml:"db"`
	ContextTTL        int64  `json:"context_ttl" mapstructure:"context_ttl" yaml:"context_ttl"`                      // 会话上下文缓存TTL(秒)
	DetectionCacheTTL int64  `json:"detection_cache_ttl" mapstructure:"detection_cache_ttl" yaml:"detection_cache_ttl"` // 重复检测查询缓存TTL(秒)
}

// Classifier 主/备分类模型端点配置
type Classifier struct {
	PrimaryUrl    string `json:"primary_url" mapstructure:"primary_url" yaml:"primary_url"`
	FallbackUrl   string `json:"fallback_url" mapstructure:"fallback_url" yaml:"fallback_url"`
	Auth          string `json:"auth" mapstructure:"auth" yaml:"auth"`
	Timeout       int64  `json:"timeout" mapstructure:"timeout" yaml:"timeout"`                      // 单次分类调用超时(秒)
	WarmupTimeout int64  `json:"warmup_timeout" mapstructure:"warmup_timeout" yaml:"warmup_timeout"` // 预热调用超时(秒), GPU冷启动可达数十秒
	ProbeInterval int64  `json:"probe_interval" mapstructure:"probe_interval" yaml:"probe_interval"` // 健康探测间隔(秒)
	WarmupText    string `json:"warmup_text" mapstructure:"warmup_text" yaml:"warmup_text"`
}

type Llm struct {
	Url         string   `json:"url" mapstructure:"url" yaml:"url"`
	Model       string   `json:"model" mapstructure:"model" yaml:"model"`
	Auth        string   `json:"auth" mapstructure:"auth" yaml:"auth"`
	Size        string   `json:"size" mapstructure:"size" yaml:"size"`
	Timeout     int64    `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	Temperature *float32 `json:"temperature" mapstructure:"temperature" yaml:"temperature"`
}

type LlmEmbedding struct {
	Url          string `json:"url" mapstructure:"url" yaml:"url"`
	Model        string `json:"model" mapstructure:"model" yaml:"model"`
	Auth         string `json:"auth" mapstructure:"auth" yaml:"auth"`
	Timeout      int64  `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	BatchTimeout int64  `json:"batch_timeout" mapstructure:"batch_timeout" yaml:"batch_timeout"`
}

type VectorDb struct {
	Url            string `json:"url" mapstructure:"url" yaml:"url"`
	Auth           string `json:"auth" mapstructure:"auth" yaml:"auth"`
	CollectionName string `json:"collection_name" mapstructure:"collection_name" yaml:"collection_name"`
}

// Search 店铺/商品搜索索引服务, LegacyUrl 为主搜索不可用时的关键词兜底
type Search struct {
	Url             string  `json:"url" mapstructure:"url" yaml:"url"`
	LegacyUrl       string  `json:"legacy_url" mapstructure:"legacy_url" yaml:"legacy_url"`
	Auth            string  `json:"auth" mapstructure:"auth" yaml:"auth"`
	Timeout         int64   `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	DefaultRadiusKm float64 `json:"default_radius_km" mapstructure:"default_radius_km" yaml:"default_radius_km"`
}

// Geocode 地理编码与保存地址查询
type Geocode struct {
	Url             string  `json:"url" mapstructure:"url" yaml:"url"`
	SavedAddressUrl string  `json:"saved_address_url" mapstructure:"saved_address_url" yaml:"saved_address_url"`
	Auth            string  `json:"auth" mapstructure:"auth" yaml:"auth"`
	Timeout         int64   `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	DefaultLat      float64 `json:"default_lat" mapstructure:"default_lat" yaml:"default_lat"`
	DefaultLng      float64 `json:"default_lng" mapstructure:"default_lng" yaml:"default_lng"`
	DefaultCity     string  `json:"default_city" mapstructure:"default_city" yaml:"default_city"`
}

type Oss struct {
	Endpoint        string `json:"endpoint" mapstructure:"endpoint" yaml:"endpoint"`
	Bucket          string `json:"bucket" mapstructure:"bucket" yaml:"bucket"`
	AccessKeyId     string `json:"access_key_id" mapstructure:"access_key_id" yaml:"access_key_id"`
	AccessKeySecret string `json:"access_key_secret" mapstructure:"access_key_secret" yaml:"access_key_secret"`
	Domain          string `json:"domain" mapstructure:"domain" yaml:"domain"`
}

// Ai 流水线策略常量, 均为经验调参项, 故全部可配置
type Ai struct {
	MaxTextLength             uint     `json:"max_text_length" mapstructure:"max_text_length" yaml:"max_text_length"`
	LlmEscalationThreshold    float64  `json:"llm_escalation_threshold" mapstructure:"llm_escalation_threshold" yaml:"llm_escalation_threshold"`
	RuleOverrideConfidence    float64  `json:"rule_override_confidence" mapstructure:"rule_override_confidence" yaml:"rule_override_confidence"`
	MinCaptureConfidence      float64  `json:"min_capture_confidence" mapstructure:"min_capture_confidence" yaml:"min_capture_confidence"`
	AutoApproveModelThreshold float64  `json:"auto_approve_model_threshold" mapstructure:"auto_approve_model_threshold" yaml:"auto_approve_model_threshold"`
	AutoApproveLlmThreshold   float64  `json:"auto_approve_llm_threshold" mapstructure:"auto_approve_llm_threshold" yaml:"auto_approve_llm_threshold"`
	VectorSearchTopK          int      `json:"vector_search_top_k" mapstructure:"vector_search_top_k" yaml:"vector_search_top_k"`
	VectorSimilarityThreshold float32  `json:"vector_similarity_threshold" mapstructure:"vector_similarity_threshold" yaml:"vector_similarity_threshold"`
	AsyncJobTimeout           int64    `json:"async_job_timeout" mapstructure:"async_job_timeout" yaml:"async_job_timeout"`
	CatalogReloadDebounce     int64    `json:"catalog_reload_debounce" mapstructure:"catalog_reload_debounce" yaml:"catalog_reload_debounce"`
	ExtraCasualKeywords       []string `json:"extra_casual_keywords" mapstructure:"extra_casual_keywords" yaml:"extra_casual_keywords"`
	ExtraMenuKeywords         []string `json:"extra_menu_keywords" mapstructure:"extra_menu_keywords" yaml:"extra_menu_keywords"`
	ExtraTrackOrderKeywords   []string `json:"extra_track_order_keywords" mapstructure:"extra_track_order_keywords" yaml:"extra_track_order_keywords"`
}

// Export 训练数据导出
type Export struct {
	Dir         string `json:"dir" mapstructure:"dir" yaml:"dir"`
	UploadToOss bool   `json:"upload_to_oss" mapstructure:"upload_to_oss" yaml:"upload_to_oss"`
}
