package markup

import (
	"errors"
	"fmt"
	"image/draw"
	"math"
	"strings"

	"github.com/ByLCY/territorio/binding"
)

// MaxCoord 是绘制坐标允许的最大像素值：字形绘制使用 26.6 定点数。
const MaxCoord = math.MaxInt32 >> 6

var (
	// ErrCoordinateOverflow 表示游标或锚点无法转换为绘制坐标。
	ErrCoordinateOverflow = errors.New("markup: 绘制坐标溢出")
	// ErrFont 表示无法为给定字重与字号创建字体面。
	ErrFont = errors.New("markup: 字体不可用")
)

// Weight selects the regular or the bold font of a FontPair.
type Weight int

const (
	Regular Weight = iota
	Bold
)

func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "regular"
}

// Typesetter measures and draws one line of text with a single font at a single size.
type Typesetter interface {
	// TextWidth 返回文本渲染后的像素宽度。
	TextWidth(text string) int
	// DrawText 以 (x, y) 为文本左上角绘制黑色文字。
	DrawText(dst draw.Image, x, y int, text string)
}

// FontPair supplies typesetters for the regular and the bold weight.
// Implementations are shared read-only by every render call of a batch.
type FontPair interface {
	Face(weight Weight, size float64) (Typesetter, error)
}

// Segment 是一段使用同一字重连续绘制的文本。
type Segment struct {
	Text  string `json:"text"`
	Bold  bool   `json:"bold"`
	X     int    `json:"x"`
	Width int    `json:"width"`
}

// Line 记录一次渲染的全部计算结果，可用于调试输出。
type Line struct {
	Template      string    `json:"template"`
	Substituted   string    `json:"substituted"`
	Clean         string    `json:"clean"`
	Align         Align     `json:"align"`
	Size          float64   `json:"size"`
	AnchorX       int       `json:"anchorX"`
	AnchorY       int       `json:"anchorY"`
	OriginX       int       `json:"originX"`
	OriginalWidth int       `json:"originalWidth"`
	CleanWidth    int       `json:"cleanWidth"`
	Segments      []Segment `json:"segments"`
	FinalBold     bool      `json:"finalBold"`
}

// Span 是替换变量、拆分粗体标记后得到的文本片段。
type Span struct {
	Text string
	Bold bool
	// Marker 为 true 表示该片段因遇到粗体标记而结束。
	Marker bool
}

// Spans 按状态机 {常规, 粗体} 拆分模板：遇到标记时输出当前片段并切换状态，
// 结尾处输出剩余的非空片段。占位符按 vars 替换，未知占位符原样保留。
// 奇数个标记时最后一个标记视为普通文本 "**"。
func (t *Template) Spans(vars binding.Variables) ([]Span, bool) {
	literalMarker := -1
	if t.Markers()%2 == 1 {
		for i := len(t.Parts) - 1; i >= 0; i-- {
			if t.Parts[i].Bold {
				literalMarker = i
				break
			}
		}
	}

	var (
		spans   []Span
		bold    bool
		current strings.Builder
	)
	for i, p := range t.Parts {
		switch {
		case p.Bold && i != literalMarker:
			spans = append(spans, Span{Text: current.String(), Bold: bold, Marker: true})
			current.Reset()
			bold = !bold
		case p.Bold:
			current.WriteString(BoldMarker)
		case p.Var != nil:
			if val, ok := vars.Lookup(p.Name()); ok {
				current.WriteString(val)
			} else {
				current.WriteString(*p.Var)
			}
		case p.Text != nil:
			current.WriteString(*p.Text)
		}
	}
	if current.Len() > 0 {
		spans = append(spans, Span{Text: current.String(), Bold: bold})
	}
	return spans, bold
}

// Layout 计算模板在 (x, y) 处按 align 对齐时每个片段的位置，不绘制。
//
// 对齐参考宽度取未替换、未去标记的模板原文（常规字体），
// 与去标记后文本宽度之差决定原点的偏移量。
func Layout(source string, vars binding.Variables, fonts FontPair, size float64, x, y int, align Align) (*Line, error) {
	tpl, err := Parse(source)
	if err != nil {
		return nil, err
	}
	regular, err := face(fonts, Regular, size)
	if err != nil {
		return nil, err
	}
	bold, err := face(fonts, Bold, size)
	if err != nil {
		return nil, err
	}

	spans, finalBold := tpl.Spans(vars)
	var clean strings.Builder
	for _, s := range spans {
		clean.WriteString(s.Text)
	}

	line := &Line{
		Template:      source,
		Substituted:   binding.Interpolate(source, vars),
		Clean:         clean.String(),
		Align:         align,
		Size:          size,
		AnchorX:       x,
		AnchorY:       y,
		OriginalWidth: regular.TextWidth(source),
		FinalBold:     finalBold,
	}
	line.CleanWidth = regular.TextWidth(line.Clean)
	line.OriginX = x + align.Offset(line.OriginalWidth-line.CleanWidth)

	if err := checkCoord(y); err != nil {
		return nil, fmt.Errorf("锚点 y=%d: %w", y, err)
	}
	cursor := line.OriginX
	for _, s := range spans {
		if err := checkCoord(cursor); err != nil {
			return nil, fmt.Errorf("游标 x=%d: %w", cursor, err)
		}
		ts := regular
		if s.Bold {
			ts = bold
		}
		w := ts.TextWidth(s.Text)
		line.Segments = append(line.Segments, Segment{Text: s.Text, Bold: s.Bold, X: cursor, Width: w})
		cursor += w
	}
	return line, nil
}

// Draw 将已计算好的行绘制到画布上。
func Draw(dst draw.Image, line *Line, fonts FontPair) error {
	if line == nil {
		return nil
	}
	for _, seg := range line.Segments {
		if seg.Text == "" {
			continue
		}
		weight := Regular
		if seg.Bold {
			weight = Bold
		}
		ts, err := face(fonts, weight, line.Size)
		if err != nil {
			return err
		}
		ts.DrawText(dst, seg.X, line.AnchorY, seg.Text)
	}
	return nil
}

// Render 替换变量、处理粗体标记并按对齐方式将模板绘制到 dst。
func Render(dst draw.Image, source string, vars binding.Variables, fonts FontPair, size float64, x, y int, align Align) (*Line, error) {
	line, err := Layout(source, vars, fonts, size, x, y, align)
	if err != nil {
		return nil, err
	}
	if err := Draw(dst, line, fonts); err != nil {
		return nil, err
	}
	return line, nil
}

func face(fonts FontPair, weight Weight, size float64) (Typesetter, error) {
	if fonts == nil {
		return nil, fmt.Errorf("%w: 未提供字体", ErrFont)
	}
	ts, err := fonts.Face(weight, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %.1fpx: %v", ErrFont, weight, size, err)
	}
	return ts, nil
}

func checkCoord(v int) error {
	if v < 0 || v > MaxCoord {
		return ErrCoordinateOverflow
	}
	return nil
}
