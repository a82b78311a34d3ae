package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/territorio/layout"
)

// DefaultPath 是默认的配置文件路径。
const DefaultPath = "config.yaml"

// AppConfig 是程序的全部配置，对应 config.yaml。
type AppConfig struct {
	Font            FontConfig   `yaml:"font"`
	Layout          LayoutConfig `yaml:"layout"`
	Map             MapConfig    `yaml:"map"`
	OutputDirectory string       `yaml:"output_directory"`
	Export          ExportConfig `yaml:"export"`
}

type FontConfig struct {
	PathRegular  string  `yaml:"path_regular"`
	PathBold     string  `yaml:"path_bold"`
	SizeTitle    float64 `yaml:"size_title"`
	SizeSubtitle float64 `yaml:"size_subtitle"`
}

type LayoutConfig struct {
	Width             int    `yaml:"width"`
	Height            int    `yaml:"height"`
	Margin            int    `yaml:"margin"`
	TitleMargin       int    `yaml:"title_margin"`
	TextTitle         string `yaml:"text_title"`
	TextSubtitleLeft  string `yaml:"text_subtitle_left"`
	TextSubtitleRight string `yaml:"text_subtitle_right"`
}

type MapConfig struct {
	MapsDirectory string  `yaml:"maps_directory"`
	Crop          MapCrop `yaml:"crop"`
}

type MapCrop struct {
	Top    int `yaml:"top"`
	Left   int `yaml:"left"`
	Bottom int `yaml:"bottom"`
	Right  int `yaml:"right"`
}

// ExportConfig 控制可选的 PDF 汇总输出；PDF 为空表示不输出。
type ExportConfig struct {
	PDF    string  `yaml:"pdf"`
	DPI    float64 `yaml:"dpi"`
	Margin string  `yaml:"margin"`
}

// Default 返回内置默认配置。
func Default() *AppConfig {
	return &AppConfig{
		Font: FontConfig{
			PathRegular:  "fonts/Roboto-Regular.ttf",
			PathBold:     "fonts/Roboto-Bold.ttf",
			SizeTitle:    28,
			SizeSubtitle: 20,
		},
		Layout: LayoutConfig{
			Width:             1000,
			Height:            707,
			Margin:            30,
			TitleMargin:       40,
			TextTitle:         "Piantina di territorio",
			TextSubtitleLeft:  "Congregazione **Roma** Pratolungo",
			TextSubtitleRight: "**ZONA** <zone_name> **N.** <territory_number>",
		},
		Map: MapConfig{
			MapsDirectory: "./maps",
			Crop:          MapCrop{Top: 100, Left: 50, Bottom: 77, Right: 82},
		},
		OutputDirectory: "layouts",
		Export: ExportConfig{
			DPI:    150,
			Margin: "10mm",
		},
	}
}

// Load 读取 path 处的配置，文件中缺少的键保留默认值。
// 文件不存在、无法解析或校验失败时返回默认配置以及对应错误，调用方可据此提示后继续运行。
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("配置文件 %s 无效: %w", path, err)
	}
	return cfg, nil
}

// Save 将配置写入 path（YAML）。
func (c *AppConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入配置文件 %s 失败: %w", path, err)
	}
	return nil
}

// Validate 检查配置取值范围。模板文本允许为空。
func (c *AppConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Font.PathRegular != "", "font.path_regular 不能为空")
	check(c.Font.PathBold != "", "font.path_bold 不能为空")
	check(c.Font.SizeTitle > 0, "font.size_title 必须为正数: %v", c.Font.SizeTitle)
	check(c.Font.SizeSubtitle > 0, "font.size_subtitle 必须为正数: %v", c.Font.SizeSubtitle)
	check(c.Layout.Width > 0, "layout.width 必须为正数: %d", c.Layout.Width)
	check(c.Layout.Height > 0, "layout.height 必须为正数: %d", c.Layout.Height)
	check(c.Layout.Margin >= 0, "layout.margin 不能为负: %d", c.Layout.Margin)
	check(c.Layout.TitleMargin >= 0, "layout.title_margin 不能为负: %d", c.Layout.TitleMargin)
	check(c.Map.MapsDirectory != "", "map.maps_directory 不能为空")
	crop := c.Map.Crop
	check(crop.Top >= 0 && crop.Left >= 0 && crop.Bottom >= 0 && crop.Right >= 0, "map.crop 不能为负: %+v", crop)
	check(c.OutputDirectory != "", "output_directory 不能为空")
	check(c.Export.DPI > 0, "export.dpi 必须为正数: %v", c.Export.DPI)
	if c.Export.Margin != "" {
		if m, err := layout.ParseLength(c.Export.Margin); err != nil {
			errs = append(errs, fmt.Errorf("export.margin: %w", err))
		} else {
			check(m.Value >= 0, "export.margin 不能为负: %s", c.Export.Margin)
		}
	}
	return errors.Join(errs...)
}

// PageMargin 返回 PDF 页边距，未配置时为 0。
func (c *AppConfig) PageMargin() layout.Length {
	if c.Export.Margin == "" {
		return layout.Length{Unit: layout.UnitMM}
	}
	m, err := layout.ParseLength(c.Export.Margin)
	if err != nil {
		return layout.Length{Unit: layout.UnitMM}
	}
	return m
}

// ToSpec 将配置转换为布局描述。
func (c *AppConfig) ToSpec() layout.Spec {
	return layout.Spec{
		Width:         c.Layout.Width,
		Height:        c.Layout.Height,
		Margin:        c.Layout.Margin,
		TitleMargin:   c.Layout.TitleMargin,
		Title:         c.Layout.TextTitle,
		SubtitleLeft:  c.Layout.TextSubtitleLeft,
		SubtitleRight: c.Layout.TextSubtitleRight,
		TitleSize:     c.Font.SizeTitle,
		SubtitleSize:  c.Font.SizeSubtitle,
		Crop: layout.CropInsets{
			Top:    c.Map.Crop.Top,
			Left:   c.Map.Crop.Left,
			Bottom: c.Map.Crop.Bottom,
			Right:  c.Map.Crop.Right,
		},
	}
}
