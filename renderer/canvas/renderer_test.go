package canvasrenderer

import (
	"bytes"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/territorio/layout"
	"github.com/ByLCY/territorio/renderer"
)

func TestPageSize(t *testing.T) {
	pageW, pageH, imgW, imgH := PageSize(1000, 707, 254, 10, 5)
	if math.Abs(imgW-100) > 1e-9 || math.Abs(imgH-70.7) > 1e-9 {
		t.Fatalf("图片尺寸错误: %vx%v", imgW, imgH)
	}
	if math.Abs(pageW-120) > 1e-9 || math.Abs(pageH-95.7) > 1e-9 {
		t.Fatalf("页面尺寸错误: %vx%v", pageW, pageH)
	}
}

func TestRenderSheet(t *testing.T) {
	dir := t.TempDir()
	onDisk := imaging.New(200, 140, color.NRGBA{R: 200, A: 255})
	if err := imaging.Save(onDisk, filepath.Join(dir, "2-centro.png")); err != nil {
		t.Fatal(err)
	}
	r := NewRendererWithOptions(Options{BaseDir: dir, DPI: 100, Margin: layout.Length{Value: 5, Unit: layout.UnitMM}})
	sheet := &renderer.Sheet{
		Title:   "Territori",
		Creator: "territorio",
		Pages: []renderer.Page{
			{Name: "1", Caption: "1 - Casal Monastero", Image: imaging.New(100, 70, color.White)},
			{Name: "2", Path: "2-centro.png"},
		},
	}
	data, err := r.Render(sheet)
	if err != nil {
		t.Fatalf("Render 失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出应为 PDF")
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer(t.TempDir())
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("空文档应报错")
	}
	if _, err := r.Render(&renderer.Sheet{}); err == nil {
		t.Fatalf("没有页面应报错")
	}
	if _, err := r.Render(&renderer.Sheet{Pages: []renderer.Page{{Name: "x", Path: "missing.png"}}}); err == nil {
		t.Fatalf("缺失图片应报错")
	}
	bad := NewRendererWithOptions(Options{CaptionFont: "builtin:nope"})
	sheet := &renderer.Sheet{Pages: []renderer.Page{{Caption: "x", Image: imaging.New(10, 10, color.White)}}}
	if _, err := bad.Render(sheet); err == nil {
		t.Fatalf("图注字体无效应报错")
	}
}
