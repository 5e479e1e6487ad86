package utils

import (
	"math"
	"testing"
	"time"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.5, 0.5},
		{0, 0},
		{1, 1},
		{-0.3, 0},
		{1.7, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}

// TestNormalizeText 规范化输出是训练样本去重的唯一键, 行为变更会影响存量数据
func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bhai!! Mera Order   Kahan Hai??", "bhai mera order kahan hai"},
		{"  do plate biryani.  ", "do plate biryani"},
		{"#ORD123, (urgent)", "ord123 urgent"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, 期望 %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("短字符串不应被截断, got %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("Truncate = %q, 期望 hello...", got)
	}
	// 多字节字符按rune截断, 不能截出半个字符
	if got := Truncate("नमस्ते दुनिया", 6); got != "नमस्ते..." {
		t.Errorf("Truncate = %q, 期望按rune截断", got)
	}
}

func TestHashStable(t *testing.T) {
	a := Hash("hinglish|do biryani bhej do")
	b := Hash("hinglish|do biryani bhej do")
	if a != b {
		t.Error("相同输入的Hash必须一致")
	}
	if a == Hash("hinglish|ek biryani bhej do") {
		t.Error("不同输入的Hash不应碰撞")
	}
}

func TestGetTTLWithJitter(t *testing.T) {
	base := int64(600)
	for i := 0; i < 100; i++ {
		ttl := GetTTLWithJitter(base)
		if ttl < time.Duration(base)*time.Second || ttl > time.Duration(base+base/10)*time.Second {
			t.Fatalf("TTL %v 超出抖动范围 [600s, 660s]", ttl)
		}
	}
	if GetTTLWithJitter(0) != 0 {
		t.Error("非正的基础TTL应返回0")
	}
}

func TestParseDateFromLogFileName(t *testing.T) {
	tm, ok := ParseDateFromLogFileName("run.log.2026-08-29", time.UTC)
	if !ok {
		t.Fatal("合法的日志文件名应解析成功")
	}
	if tm.Year() != 2026 || tm.Month() != 8 || tm.Day() != 29 {
		t.Errorf("解析出的日期 = %v", tm)
	}

	for _, name := range []string{"run.log", "nodot", "gin.log.notadate"} {
		if _, ok := ParseDateFromLogFileName(name, time.UTC); ok {
			t.Errorf("%q 不应解析成功", name)
		}
	}
}
