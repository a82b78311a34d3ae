package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/territorio/fonts"
	"github.com/ByLCY/territorio/layout"
	"github.com/ByLCY/territorio/renderer"
)

const (
	defaultDPI         = 150
	defaultCaptionSize = 9 // pt
	captionLeading     = 1.6
)

// Renderer 使用 github.com/tdewolff/canvas 将版面图片排成 PDF，每张图片一页。
type Renderer struct {
	baseDir     string
	dpi         float64
	margin      layout.Length
	captionFont string
	captionSize float64

	fontMu  sync.Mutex
	family  *canvas.FontFamily
	fontErr error
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	BaseDir     string
	DPI         float64       // 图片像素与页面尺寸的换算分辨率
	Margin      layout.Length // 页边距
	CaptionFont string        // 图注字体，"builtin:<name>" 或路径
	CaptionSize float64       // 图注字号（pt），0 使用默认值
}

// NewRenderer creates a renderer rooted at baseDir with default options.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer; zero values fall back to defaults.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:     opts.BaseDir,
		dpi:         opts.DPI,
		margin:      opts.Margin,
		captionFont: opts.CaptionFont,
		captionSize: opts.CaptionSize,
	}
	if r.dpi <= 0 {
		r.dpi = defaultDPI
	}
	if r.captionFont == "" {
		r.captionFont = fonts.BuiltinPrefix + "goregular"
	}
	if r.captionSize <= 0 {
		r.captionSize = defaultCaptionSize
	}
	return r
}

// PageSize 返回 (w, h) 像素图片在给定分辨率与边距下的页面尺寸（mm），以及图片本身的尺寸（mm）。
func PageSize(w, h int, dpi float64, margin, caption float64) (pageW, pageH, imgW, imgH float64) {
	imgW = layout.Px(w).ToMM(dpi)
	imgH = layout.Px(h).ToMM(dpi)
	return imgW + 2*margin, imgH + 2*margin + caption, imgW, imgH
}

// Render renders the sheet into a PDF byte slice.
func (r *Renderer) Render(sheet *renderer.Sheet) ([]byte, error) {
	if sheet == nil {
		return nil, fmt.Errorf("输出文档为空")
	}
	if len(sheet.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	margin := r.margin.ToMM(r.dpi)
	if margin < 0 {
		return nil, fmt.Errorf("页边距不能为负: %v", margin)
	}

	var (
		buf    bytes.Buffer
		writer *pdf.PDF
	)
	for i, page := range sheet.Pages {
		img, err := r.loadImage(page)
		if err != nil {
			return nil, err
		}
		var face *canvas.FontFace
		captionH := 0.0
		if page.Caption != "" {
			if face, err = r.captionFace(); err != nil {
				return nil, err
			}
			captionH = face.Metrics().LineHeight * captionLeading
		}
		b := img.Bounds()
		pageW, pageH, imgW, imgH := PageSize(b.Dx(), b.Dy(), r.dpi, margin, captionH)

		if i == 0 {
			writer = pdf.New(&buf, pageW, pageH, nil)
			r.applyMeta(writer, sheet)
		} else {
			writer.NewPage(pageW, pageH)
		}
		c := canvas.New(pageW, pageH)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与版面保持左上角为原点

		ctx.DrawImage(margin, margin, img, canvas.DPMM(r.dpi/layout.MmPerInch))
		if face != nil {
			baseline := margin + imgH + face.Metrics().Ascent*captionLeading
			ctx.DrawText(margin+imgW/2, baseline, canvas.NewTextLine(face, page.Caption, canvas.Center))
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, sheet *renderer.Sheet) {
	if writer == nil {
		return
	}
	keywords := strings.Join(sheet.Keywords, ", ")
	writer.SetInfo(sheet.Title, sheet.Subject, keywords, sheet.Author, sheet.Creator)
}

func (r *Renderer) loadImage(page renderer.Page) (image.Image, error) {
	if page.Image != nil {
		return page.Image, nil
	}
	if page.Path == "" {
		return nil, fmt.Errorf("页面 %s 缺少图片", page.Name)
	}
	path := page.Path
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", page.Path, err)
	}
	return img, nil
}

// captionFace 首次使用时加载图注字体族，之后复用。
func (r *Renderer) captionFace() (*canvas.FontFace, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family == nil && r.fontErr == nil {
		r.family, r.fontErr = r.loadFamily()
	}
	if r.fontErr != nil {
		return nil, r.fontErr
	}
	return r.family.Face(r.captionSize, color.Gray{Y: 60}, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) loadFamily() (*canvas.FontFamily, error) {
	data, err := fonts.Load(r.captionFont, r.baseDir)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("caption")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载图注字体 %s 失败: %w", r.captionFont, err)
	}
	return family, nil
}
