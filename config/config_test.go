package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesLayout(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("默认配置应有效: %v", err)
	}
	spec := cfg.ToSpec()
	if spec.Width != 1000 || spec.Height != 707 || spec.Margin != 30 || spec.TitleMargin != 40 {
		t.Fatalf("默认画布错误: %+v", spec)
	}
	if spec.Crop.Top != 100 || spec.Crop.Left != 50 || spec.Crop.Bottom != 77 || spec.Crop.Right != 82 {
		t.Fatalf("默认裁剪错误: %+v", spec.Crop)
	}
	if spec.TitleSize != 28 || spec.SubtitleSize != 20 {
		t.Fatalf("默认字号错误: %v %v", spec.TitleSize, spec.SubtitleSize)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "layout:\n  width: 1200\n  text_title: \"Mappa\"\nmap:\n  crop:\n    top: 10\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Layout.Width != 1200 || cfg.Layout.TextTitle != "Mappa" || cfg.Map.Crop.Top != 10 {
		t.Fatalf("文件中的值未生效: %+v", cfg)
	}
	if cfg.Layout.Height != 707 || cfg.Map.Crop.Left != 50 || cfg.OutputDirectory != "layouts" {
		t.Fatalf("缺失的键应保留默认值: %+v", cfg)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("缺失文件应返回 ErrNotExist: %v", err)
	}
	if cfg == nil || cfg.Layout.Width != 1000 {
		t.Fatalf("应返回默认配置: %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("layout: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, err := Load(bad); err == nil || cfg.Layout.Width != 1000 {
		t.Fatalf("无法解析时应返回默认配置和错误: %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("layout:\n  width: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, err := Load(invalid); err == nil || cfg.Layout.Width != 1000 {
		t.Fatalf("校验失败时应返回默认配置和错误: %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	if err := cfg.Set(LayoutTextSubtitleLeft, "Congregazione **Milano** Centro"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save 失败: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if *loaded != *cfg {
		t.Fatalf("保存后重新加载不一致:\n%+v\n%+v", loaded, cfg)
	}
}

func TestFieldLabelsRoundTrip(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range Fields() {
		label := f.Label()
		if seen[label] {
			t.Fatalf("重复的显示名称: %s", label)
		}
		seen[label] = true
		got, err := ParseField(label)
		if err != nil || got != f {
			t.Fatalf("ParseField(%q) = %v, %v", label, got, err)
		}
	}
	if f, err := ParseField("  map crop - top "); err != nil || f != MapCropTop {
		t.Fatalf("应忽略大小写与空白: %v %v", f, err)
	}
	if _, err := ParseField("Font - Color"); err == nil {
		t.Fatalf("未知名称应报错")
	}
}

func TestSetTypedValues(t *testing.T) {
	cfg := Default()
	for _, f := range Fields() {
		// 原值写回不应改变配置
		if err := cfg.Set(f, cfg.Get(f)); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
	}
	if *cfg != *Default() {
		t.Fatalf("写回原值后配置发生变化")
	}

	if err := cfg.Set(FontSizeTitle, "32.5"); err != nil || cfg.Font.SizeTitle != 32.5 {
		t.Fatalf("浮点数设置失败: %v %v", err, cfg.Font.SizeTitle)
	}
	if err := cfg.Set(MapCropRight, " 12 "); err != nil || cfg.Map.Crop.Right != 12 {
		t.Fatalf("整数设置失败: %v %v", err, cfg.Map.Crop.Right)
	}
	if got := cfg.Get(FontSizeTitle); got != "32.5" {
		t.Fatalf("Get 格式错误: %q", got)
	}

	invalid := []struct {
		field Field
		value string
	}{
		{LayoutWidth, "wide"},
		{LayoutWidth, "0"},
		{FontSizeSubtitle, "-1"},
		{MapCropTop, "-4"},
		{ExportDPI, "abc"},
		{ExportMargin, "ten"},
		{OutputDirectory, ""},
	}
	for _, c := range invalid {
		before := *cfg
		if err := cfg.Set(c.field, c.value); err == nil {
			t.Fatalf("%s=%q 应报错", c.field, c.value)
		}
		if *cfg != before {
			t.Fatalf("%s=%q 失败后配置不应改变", c.field, c.value)
		}
	}
}

func TestPageMargin(t *testing.T) {
	cfg := Default()
	m := cfg.PageMargin()
	if m.Value != 10 || m.Unit.String() != "mm" {
		t.Fatalf("默认页边距错误: %+v", m)
	}
	cfg.Export.Margin = ""
	if m := cfg.PageMargin(); m.Value != 0 {
		t.Fatalf("未配置页边距应为 0: %+v", m)
	}
}
