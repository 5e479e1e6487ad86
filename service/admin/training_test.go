package admin

import (
	"os"
	"testing"
	"time"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/model/db"
	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	global.Log = logrus.New()
	global.Log.SetLevel(logrus.PanicLevel)
	global.Tz = time.UTC
	os.Exit(m.Run())
}

// TestBuildEntityRecord 槽位标注转BIO序列
func TestBuildEntityRecord(t *testing.T) {
	sample := db.TrainingSample{
		Text:     "do plate chicken biryani bhej do",
		Entities: `{"food":"chicken biryani","quantity":"do"}`,
	}

	record, ok := buildEntityRecord(sample)
	if !ok {
		t.Fatal("可标注的样本应生成实体记录")
	}

	wantTags := []string{"B-QUANTITY", "O", "B-FOOD", "I-FOOD", "O", "O"}
	if len(record.Tags) != len(wantTags) {
		t.Fatalf("Tags长度 = %d, 期望 %d", len(record.Tags), len(wantTags))
	}
	for i, want := range wantTags {
		if record.Tags[i] != want {
			t.Errorf("Tags[%d] = %s, 期望 %s (tokens=%v)", i, record.Tags[i], want, record.Tokens)
		}
	}
}

// TestBuildEntityRecordPunctuation token带边缘标点时仍要能对上槽位值
func TestBuildEntityRecordPunctuation(t *testing.T) {
	sample := db.TrainingSample{
		Text:     "Biryani, chahiye abhi",
		Entities: `{"food":"biryani"}`,
	}

	record, ok := buildEntityRecord(sample)
	if !ok {
		t.Fatal("标点不应影响标注")
	}
	if record.Tags[0] != "B-FOOD" {
		t.Errorf("Tags[0] = %s, 期望 B-FOOD", record.Tags[0])
	}
}

// TestBuildEntityRecordSkips 对不上原文的槽位值整条跳过, 宁缺毋错
func TestBuildEntityRecordSkips(t *testing.T) {
	tests := []db.TrainingSample{
		{Text: "kuch bhej do", Entities: `{"food":"paneer tikka"}`}, // 值不在原文里
		{Text: "biryani chahiye", Entities: `{}`},                   // 无槽位
		{Text: "biryani chahiye", Entities: `not json`},             // 槽位损坏
	}

	for _, sample := range tests {
		if _, ok := buildEntityRecord(sample); ok {
			t.Errorf("样本 %q (entities=%s) 不应生成实体记录", sample.Text, sample.Entities)
		}
	}
}

func TestFindTokenSpan(t *testing.T) {
	tokens := []string{"do", "plate", "chicken", "biryani", "bhej", "do"}

	if got := findTokenSpan(tokens, "chicken biryani"); got != 2 {
		t.Errorf("findTokenSpan(chicken biryani) = %d, 期望 2", got)
	}
	if got := findTokenSpan(tokens, "Chicken BIRYANI"); got != 2 {
		t.Errorf("比较应忽略大小写, got %d", got)
	}
	if got := findTokenSpan(tokens, "dosa"); got != -1 {
		t.Errorf("不存在的值应返回-1, got %d", got)
	}
	if got := findTokenSpan(tokens, ""); got != -1 {
		t.Errorf("空值应返回-1, got %d", got)
	}
	if got := findTokenSpan(tokens, "chicken biryani bhej do extra words here"); got != -1 {
		t.Errorf("超出token数的值应返回-1, got %d", got)
	}
}
