package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitee.com/taoJie_1/nlu-agent/dao"
	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/db"
	"gitee.com/taoJie_1/nlu-agent/model/dto"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
	"gitee.com/taoJie_1/nlu-agent/utils"
)

type ITrainingService interface {
	// Export 把已审核样本导出为三份JSONL训练工件: 意图分类、BIO实体标注、语气分类。
	// 幂等: 重复执行生成带时间戳的新文件, 不覆盖旧产物。
	Export(ctx context.Context) (*dto.ExportResult, error)
	// Stats 语料统计
	Stats() (*dto.TrainingStats, error)
	// Import 批量导入外部标注样本, 走与在线采集相同的去重
	Import(req *dto.ImportRequest) (int, error)
}

type trainingService struct{}

func NewTrainingService() ITrainingService {
	return &trainingService{}
}

func (s *trainingService) Export(ctx context.Context) (*dto.ExportResult, error) {
	samples, err := dao.App.TrainingSampleDb.ListApproved()
	if err != nil {
		return nil, fmt.Errorf("读取已审核样本失败: %w", err)
	}

	stamp := time.Now().In(global.Tz).Format("20060102_150405")
	dir := global.Config.Export.Dir
	if dir == "" {
		dir = "export"
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("创建导出目录失败: %w", err)
	}

	result := &dto.ExportResult{
		ExportedAt: time.Now().Unix(),
		IntentFile: filepath.Join(dir, fmt.Sprintf("intent_%s.jsonl", stamp)),
		EntityFile: filepath.Join(dir, fmt.Sprintf("entity_%s.jsonl", stamp)),
		ToneFile:   filepath.Join(dir, fmt.Sprintf("tone_%s.jsonl", stamp)),
	}

	var intentRecords, entityRecords, toneRecords []interface{}
	for _, sample := range samples {
		intentRecords = append(intentRecords, dto.IntentRecord{
			Text:     sample.Text,
			Intent:   sample.Intent,
			Language: sample.Language,
		})

		if record, ok := buildEntityRecord(sample); ok {
			entityRecords = append(entityRecords, record)
		}

		if sample.Tone != "" {
			toneRecords = append(toneRecords, dto.ToneRecord{
				Text: sample.Text,
				Tone: sample.Tone,
			})
		}
	}

	if err := writeJsonl(result.IntentFile, intentRecords); err != nil {
		return nil, err
	}
	if err := writeJsonl(result.EntityFile, entityRecords); err != nil {
		return nil, err
	}
	if err := writeJsonl(result.ToneFile, toneRecords); err != nil {
		return nil, err
	}
	result.IntentCount = len(intentRecords)
	result.EntityCount = len(entityRecords)
	result.ToneCount = len(toneRecords)

	if global.Config.Export.UploadToOss && global.OssService != nil {
		key, err := global.OssService.UploadLocalFile(result.IntentFile, "training")
		if err != nil {
			// 上传失败不影响导出本身, 本地产物已经落盘
			global.Log.Errorf("[export] 上传训练工件到OSS失败: %v", err)
		} else {
			result.OssObjectKey = key
		}
	}

	global.Log.Infof("[export] 训练数据导出完成: intent=%d entity=%d tone=%d dir=%s",
		result.IntentCount, result.EntityCount, result.ToneCount, dir)
	return result, nil
}

func (s *trainingService) Stats() (*dto.TrainingStats, error) {
	return dao.App.TrainingSampleDb.Stats()
}

func (s *trainingService) Import(req *dto.ImportRequest) (int, error) {
	samples := make([]db.TrainingSample, 0, len(req.Samples))
	for _, record := range req.Samples {
		text := strings.TrimSpace(record.Text)
		if text == "" || record.Intent == "" {
			continue
		}
		samples = append(samples, db.TrainingSample{
			Text:           text,
			NormalizedText: utils.NormalizeText(text),
			Intent:         record.Intent,
			Entities:       "{}",
			Confidence:     1.0,
			Source:         enum.SampleSourceImport,
			Status:         enum.ReviewStatusApproved,
			Language:       record.Language,
		})
	}
	return dao.App.TrainingSampleDb.BatchImport(samples)
}

// buildEntityRecord 把 槽位->原话 的标注转成逐token的BIO序列。
// 槽位值在原文中找不到连续token跨度时整条跳过, 宁缺毋错。
func buildEntityRecord(sample db.TrainingSample) (dto.EntityRecord, bool) {
	var entities map[string]string
	if err := json.Unmarshal([]byte(sample.Entities), &entities); err != nil || len(entities) == 0 {
		return dto.EntityRecord{}, false
	}

	tokens := strings.Fields(sample.Text)
	if len(tokens) == 0 {
		return dto.EntityRecord{}, false
	}

	tags := make([]string, len(tokens))
	for i := range tags {
		tags[i] = "O"
	}

	tagged := false
	for slot, value := range entities {
		span := findTokenSpan(tokens, value)
		if span < 0 {
			continue
		}
		valueTokens := strings.Fields(value)
		label := strings.ToUpper(slot)
		tags[span] = "B-" + label
		for i := 1; i < len(valueTokens); i++ {
			tags[span+i] = "I-" + label
		}
		tagged = true
	}
	if !tagged {
		return dto.EntityRecord{}, false
	}

	return dto.EntityRecord{Tokens: tokens, Tags: tags}, true
}

// findTokenSpan 在token序列中找值的起始下标, 比较时忽略大小写和边缘标点
func findTokenSpan(tokens []string, value string) int {
	valueTokens := strings.Fields(value)
	if len(valueTokens) == 0 || len(valueTokens) > len(tokens) {
		return -1
	}
	for i := 0; i+len(valueTokens) <= len(tokens); i++ {
		matched := true
		for j, vt := range valueTokens {
			if utils.NormalizeText(tokens[i+j]) != utils.NormalizeText(vt) {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}

// writeJsonl 逐行写JSON, 空记录集也生成空文件, 保证下游训练脚本路径稳定
func writeJsonl(path string, records []interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建导出文件失败: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("写入导出记录失败: %w", err)
		}
	}
	return nil
}
