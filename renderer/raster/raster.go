// Package raster measures and draws text on pixel canvases with OpenType fonts.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/territorio/fonts"
	"github.com/ByLCY/territorio/markup"
)

// DPI 为 72 时字号即像素高度。
const DPI = 72

// Fonts 持有常规与粗体两种字体，并按 (字重, 字号) 缓存字体面。
// 可在多个渲染调用之间共享。
type Fonts struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]*Face
}

var _ markup.FontPair = (*Fonts)(nil)

type faceKey struct {
	weight markup.Weight
	size   float64
}

// Load 从 src（"builtin:<name>" 或文件路径）加载常规与粗体字体。
func Load(regularSrc, boldSrc, baseDir string) (*Fonts, error) {
	regular, err := parse(regularSrc, baseDir)
	if err != nil {
		return nil, err
	}
	bold, err := parse(boldSrc, baseDir)
	if err != nil {
		return nil, err
	}
	return New(regular, bold), nil
}

// New 使用已解析的字体创建 Fonts。
func New(regular, bold *opentype.Font) *Fonts {
	return &Fonts{regular: regular, bold: bold, faces: map[faceKey]*Face{}}
}

func parse(src, baseDir string) (*opentype.Font, error) {
	data, err := fonts.Load(src, baseDir)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", src, err)
	}
	return f, nil
}

// Face 实现 markup.FontPair。
func (f *Fonts) Face(weight markup.Weight, size float64) (markup.Typesetter, error) {
	face, err := f.face(weight, size)
	if err != nil {
		return nil, err
	}
	return face, nil
}

func (f *Fonts) face(weight markup.Weight, size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("字号必须为正数: %v", size)
	}
	key := faceKey{weight: weight, size: size}

	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	src := f.regular
	if weight == markup.Bold {
		src = f.bold
	}
	if src == nil {
		return nil, fmt.Errorf("缺少 %s 字体", weight)
	}
	ff, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: DPI, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("创建字体面失败: %w", err)
	}
	face := &Face{face: ff, ascent: ff.Metrics().Ascent}
	f.faces[key] = face
	return face, nil
}

// Face 是单一字重、单一字号的字体面。
// font.Face 不是并发安全的，因此所有操作都加锁。
type Face struct {
	mu     sync.Mutex
	face   font.Face
	ascent fixed.Int26_6
}

var _ markup.Typesetter = (*Face)(nil)

// TextWidth 返回文本前进宽度，向上取整到像素。
func (f *Face) TextWidth(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return font.MeasureString(f.face, text).Ceil()
}

// DrawText 以 (x, y) 为文本行左上角绘制黑色文字。
func (f *Face) DrawText(dst draw.Image, x, y int, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: f.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + f.ascent},
	}
	d.DrawString(text)
}
