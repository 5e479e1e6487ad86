package classifier

import (
	"encoding/json"
	"errors"
)

// 分类服务在线上存在三代响应格式, 归一化逻辑全部收敛在本文件,
// 按从新到旧的顺序逐个尝试, 不允许在业务层做动态字段探测。
//
//	v3: {"intent": "...", "confidence": 0.9, "tone": "...", "entities": {"raw": {"food": "...", ...}}}
//	v2: {"intent": "...", "intent_conf": 0.9, "slots": [{"type": "food", "value": "..."}]}
//	v1: {"intent": "...", "confidence": 0.9, "entities": {"food": "..."}}

type shapeDetector func(data []byte) (*Result, bool)

var detectors = []shapeDetector{
	detectV3,
	detectV2,
	detectV1,
}

// Normalize 把任意一代的响应体转为统一的Result。
// 多代字段同时存在时, 以最新格式的字段为准(探测顺序保证了这一点)。
func Normalize(data []byte) (*Result, error) {
	for _, detect := range detectors {
		if result, ok := detect(data); ok {
			return result, nil
		}
	}
	return nil, errors.New("无法识别的分类响应格式")
}

type v3Response struct {
	Intent     string   `json:"intent"`
	Confidence *float64 `json:"confidence"`
	Tone       string   `json:"tone"`
	Entities   *struct {
		Raw map[string]string `json:"raw"`
	} `json:"entities"`
}

func detectV3(data []byte) (*Result, bool) {
	var r v3Response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	// v3 的标志是 entities.raw 结构体
	if r.Intent == "" || r.Confidence == nil || r.Entities == nil || r.Entities.Raw == nil {
		return nil, false
	}

	slots := make(map[string]string, len(r.Entities.Raw))
	for k, v := range r.Entities.Raw {
		if v != "" {
			slots[k] = v
		}
	}
	return &Result{
		Intent:     r.Intent,
		Confidence: *r.Confidence,
		Tone:       r.Tone,
		Slots:      slots,
	}, true
}

type v2Response struct {
	Intent     string   `json:"intent"`
	IntentConf *float64 `json:"intent_conf"`
	Tone       string   `json:"tone"`
	Slots      []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"slots"`
}

func detectV2(data []byte) (*Result, bool) {
	var r v2Response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	// v2 的标志是 intent_conf 字段名
	if r.Intent == "" || r.IntentConf == nil {
		return nil, false
	}

	slots := make(map[string]string, len(r.Slots))
	for _, s := range r.Slots {
		if s.Type != "" && s.Value != "" {
			slots[s.Type] = s.Value
		}
	}
	return &Result{
		Intent:     r.Intent,
		Confidence: *r.IntentConf,
		Tone:       r.Tone,
		Slots:      slots,
	}, true
}

type v1Response struct {
	Intent     string            `json:"intent"`
	Confidence *float64          `json:"confidence"`
	Tone       string            `json:"tone"`
	Entities   map[string]string `json:"entities"`
}

func detectV1(data []byte) (*Result, bool) {
	var r v1Response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	if r.Intent == "" || r.Confidence == nil {
		return nil, false
	}

	slots := make(map[string]string, len(r.Entities))
	for k, v := range r.Entities {
		if v != "" {
			slots[k] = v
		}
	}
	return &Result{
		Intent:     r.Intent,
		Confidence: *r.Confidence,
		Tone:       r.Tone,
		Slots:      slots,
	}, true
}
