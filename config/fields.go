package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Field 是可在编辑器中修改的配置项。
type Field int

const (
	OutputDirectory Field = iota
	MapsDirectory
	FontPathRegular
	FontPathBold
	FontSizeTitle
	FontSizeSubtitle
	LayoutWidth
	LayoutHeight
	LayoutMargin
	LayoutTitleMargin
	LayoutTextTitle
	LayoutTextSubtitleLeft
	LayoutTextSubtitleRight
	MapCropTop
	MapCropLeft
	MapCropBottom
	MapCropRight
	ExportPDF
	ExportDPI
	ExportMargin
	fieldCount
)

var labels = [fieldCount]string{
	OutputDirectory:         "Output Directory",
	MapsDirectory:           "Maps Directory",
	FontPathRegular:         "Font - Regular Path",
	FontPathBold:            "Font - Bold Path",
	FontSizeTitle:           "Font - Title Size",
	FontSizeSubtitle:        "Font - Subtitle Size",
	LayoutWidth:             "Layout Width",
	LayoutHeight:            "Layout Height",
	LayoutMargin:            "Layout Margin",
	LayoutTitleMargin:       "Title Margin",
	LayoutTextTitle:         "Text Title",
	LayoutTextSubtitleLeft:  "Text Subtitle Left",
	LayoutTextSubtitleRight: "Text Subtitle Right",
	MapCropTop:              "Map Crop - Top",
	MapCropLeft:             "Map Crop - Left",
	MapCropBottom:           "Map Crop - Bottom",
	MapCropRight:            "Map Crop - Right",
	ExportPDF:               "Export - PDF Path",
	ExportDPI:               "Export - DPI",
	ExportMargin:            "Export - Page Margin",
}

// Fields 按编辑器显示顺序返回全部配置项。
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Label 返回配置项的显示名称。
func (f Field) Label() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return labels[f]
}

func (f Field) String() string { return f.Label() }

// ParseField 根据显示名称查找配置项，忽略大小写与首尾空白。
func ParseField(label string) (Field, error) {
	label = strings.TrimSpace(label)
	for i, l := range labels {
		if strings.EqualFold(l, label) {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("未知的配置项 %q", label)
}

// Get 返回配置项当前值的文本形式。
func (c *AppConfig) Get(f Field) string {
	switch f {
	case OutputDirectory:
		return c.OutputDirectory
	case MapsDirectory:
		return c.Map.MapsDirectory
	case FontPathRegular:
		return c.Font.PathRegular
	case FontPathBold:
		return c.Font.PathBold
	case FontSizeTitle:
		return formatFloat(c.Font.SizeTitle)
	case FontSizeSubtitle:
		return formatFloat(c.Font.SizeSubtitle)
	case LayoutWidth:
		return strconv.Itoa(c.Layout.Width)
	case LayoutHeight:
		return strconv.Itoa(c.Layout.Height)
	case LayoutMargin:
		return strconv.Itoa(c.Layout.Margin)
	case LayoutTitleMargin:
		return strconv.Itoa(c.Layout.TitleMargin)
	case LayoutTextTitle:
		return c.Layout.TextTitle
	case LayoutTextSubtitleLeft:
		return c.Layout.TextSubtitleLeft
	case LayoutTextSubtitleRight:
		return c.Layout.TextSubtitleRight
	case MapCropTop:
		return strconv.Itoa(c.Map.Crop.Top)
	case MapCropLeft:
		return strconv.Itoa(c.Map.Crop.Left)
	case MapCropBottom:
		return strconv.Itoa(c.Map.Crop.Bottom)
	case MapCropRight:
		return strconv.Itoa(c.Map.Crop.Right)
	case ExportPDF:
		return c.Export.PDF
	case ExportDPI:
		return formatFloat(c.Export.DPI)
	case ExportMargin:
		return c.Export.Margin
	default:
		return ""
	}
}

// Set 解析 value 并写入配置项。解析或校验失败时返回错误，配置保持不变。
func (c *AppConfig) Set(f Field, value string) error {
	next := *c
	var err error
	switch f {
	case OutputDirectory:
		next.OutputDirectory = value
	case MapsDirectory:
		next.Map.MapsDirectory = value
	case FontPathRegular:
		next.Font.PathRegular = value
	case FontPathBold:
		next.Font.PathBold = value
	case FontSizeTitle:
		next.Font.SizeTitle, err = parseFloat(value)
	case FontSizeSubtitle:
		next.Font.SizeSubtitle, err = parseFloat(value)
	case LayoutWidth:
		next.Layout.Width, err = parseInt(value)
	case LayoutHeight:
		next.Layout.Height, err = parseInt(value)
	case LayoutMargin:
		next.Layout.Margin, err = parseInt(value)
	case LayoutTitleMargin:
		next.Layout.TitleMargin, err = parseInt(value)
	case LayoutTextTitle:
		next.Layout.TextTitle = value
	case LayoutTextSubtitleLeft:
		next.Layout.TextSubtitleLeft = value
	case LayoutTextSubtitleRight:
		next.Layout.TextSubtitleRight = value
	case MapCropTop:
		next.Map.Crop.Top, err = parseInt(value)
	case MapCropLeft:
		next.Map.Crop.Left, err = parseInt(value)
	case MapCropBottom:
		next.Map.Crop.Bottom, err = parseInt(value)
	case MapCropRight:
		next.Map.Crop.Right, err = parseInt(value)
	case ExportPDF:
		next.Export.PDF = value
	case ExportDPI:
		next.Export.DPI, err = parseFloat(value)
	case ExportMargin:
		next.Export.Margin = strings.TrimSpace(value)
	default:
		return fmt.Errorf("未知的配置项 %d", int(f))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", f.Label(), err)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%s: %w", f.Label(), err)
	}
	*c = next
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("不是有效的数字 %q", s)
	}
	return v, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("不是有效的整数 %q", s)
	}
	return v, nil
}
