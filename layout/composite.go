package layout

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrSourceUnreadable 源地图无法打开或解码。
	ErrSourceUnreadable = errors.New("layout: 无法读取地图")
	// ErrInvalidCrop 裁剪边距超出源图尺寸。
	ErrInvalidCrop = errors.New("layout: 裁剪尺寸无效")
	// ErrInvalidTarget 边距过大，画布上没有放置地图的空间。
	ErrInvalidTarget = errors.New("layout: 地图目标区域无效")
)

// CropRect 返回源图 (w, h) 按 insets 裁剪后保留的区域。
// 任一边距为负，或左右/上下边距之和不小于对应尺寸时返回 ErrInvalidCrop。
func CropRect(w, h int, crop CropInsets) (image.Rectangle, error) {
	if crop.Top < 0 || crop.Left < 0 || crop.Bottom < 0 || crop.Right < 0 {
		return image.Rectangle{}, fmt.Errorf("%w: 边距不能为负 %+v", ErrInvalidCrop, crop)
	}
	if crop.Left+crop.Right >= w || crop.Top+crop.Bottom >= h {
		return image.Rectangle{}, fmt.Errorf("%w: 源图 %dx%d，边距 %+v", ErrInvalidCrop, w, h, crop)
	}
	return image.Rect(crop.Left, crop.Top, w-crop.Right, h-crop.Bottom), nil
}

// FitSize 计算 (w, h) 等比缩放后放入 (tw, th) 的尺寸，宽高分别四舍五入。
func FitSize(w, h, tw, th int) (int, int, float64, error) {
	if tw <= 0 || th <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: 目标区域 %dx%d", ErrInvalidTarget, tw, th)
	}
	scale := math.Min(float64(tw)/float64(w), float64(th)/float64(h))
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw <= 0 || nh <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: 缩放后尺寸 %dx%d", ErrInvalidTarget, nw, nh)
	}
	return nw, nh, scale, nil
}

// Placement 返回地图左上角坐标：目标区域内水平居中，底部贴齐下边距。
func Placement(canvasH, margin, tw, nw, nh int) (int, int) {
	return margin + (tw-nw)/2, canvasH - margin - nh
}

// Composite 读取地图、裁剪、等比缩放（Lanczos）后不透明地覆盖到画布上。
func Composite(canvas draw.Image, path string, margin int, crop CropInsets) (*MapBox, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrSourceUnreadable, path, err)
	}
	sb := src.Bounds()
	rect, err := CropRect(sb.Dx(), sb.Dy(), crop)
	if err != nil {
		return nil, err
	}
	cropped := imaging.Crop(src, rect.Add(sb.Min))
	opaque(cropped)

	cb := canvas.Bounds()
	tw, th := cb.Dx()-2*margin, cb.Dy()-2*margin
	nw, nh, scale, err := FitSize(rect.Dx(), rect.Dy(), tw, th)
	if err != nil {
		return nil, err
	}
	resized := imaging.Resize(cropped, nw, nh, imaging.Lanczos)
	x, y := Placement(cb.Dy(), margin, tw, nw, nh)
	dst := image.Rect(x, y, x+nw, y+nh).Add(cb.Min)
	draw.Draw(canvas, dst, resized, image.Point{}, draw.Src)

	return &MapBox{
		Source:       path,
		SourceWidth:  sb.Dx(),
		SourceHeight: sb.Dy(),
		Crop:         rect,
		Scale:        scale,
		X:            x,
		Y:            y,
		Width:        nw,
		Height:       nh,
	}, nil
}

// 丢弃透明通道，保留原始 RGB 值。
func opaque(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
