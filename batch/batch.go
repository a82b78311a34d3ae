// Package batch turns a directory of territory maps into printable layouts.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gookit/color"
	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"

	"github.com/ByLCY/territorio/config"
	"github.com/ByLCY/territorio/i18n"
	"github.com/ByLCY/territorio/layout"
	"github.com/ByLCY/territorio/markup"
	"github.com/ByLCY/territorio/renderer"
	"github.com/ByLCY/territorio/renderer/raster"

	canvasrenderer "github.com/ByLCY/territorio/renderer/canvas"
)

// MapExt 是会被处理的地图扩展名。
const MapExt = ".png"

// Options 配置一次批处理。
type Options struct {
	Logger *zerolog.Logger
	// Fonts 非空时替代按配置加载的字体。
	Fonts markup.FontPair
	// Progress 非空时在其上绘制进度条。
	Progress io.Writer
	// DebugDir 非空时为每个地块写出布局 JSON。
	DebugDir string
	// PDF 非空时覆盖配置中的 export.pdf。
	PDF string
}

// Summary 汇总一次批处理的结果。
type Summary struct {
	Total   int           `json:"total"`
	Success int           `json:"success"`
	Failure int           `json:"failure"`
	Skipped int           `json:"skipped"`
	Elapsed time.Duration `json:"elapsed"`
	Outputs []string      `json:"outputs"`
	PDF     string        `json:"pdf,omitempty"`
}

// Run 处理 maps_directory 下的每张地图并写出版面。单个地块失败只记录日志并计数，
// 不会中止批处理；只有配置、字体、目录或 PDF 输出错误才会返回 error。
func Run(ctx context.Context, cfg *config.AppConfig, opts Options) (*Summary, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置为空")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	fonts := opts.Fonts
	if fonts == nil {
		loaded, err := raster.Load(cfg.Font.PathRegular, cfg.Font.PathBold, "")
		if err != nil {
			return nil, fmt.Errorf("加载字体失败: %w", err)
		}
		fonts = loaded
	}

	outDir := cfg.OutputDirectory
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录 %s 失败: %w", outDir, err)
	}
	if opts.DebugDir != "" {
		if err := os.MkdirAll(opts.DebugDir, 0o755); err != nil {
			return nil, fmt.Errorf("创建调试目录 %s 失败: %w", opts.DebugDir, err)
		}
	}
	entries, err := os.ReadDir(cfg.Map.MapsDirectory)
	if err != nil {
		return nil, fmt.Errorf("读取地图目录 %s 失败: %w", cfg.Map.MapsDirectory, err)
	}

	start := time.Now()
	summary := &Summary{Total: len(entries)}
	r := &runner{
		cfg:      cfg,
		spec:     cfg.ToSpec(),
		fonts:    fonts,
		debugDir: opts.DebugDir,
		written:  mapset.New[string](),
		summary:  summary,
		log:      log,
		index:    map[string]int{},
	}

	bar := newProgress(opts.Progress, len(entries), i18n.T("PROCESSING"))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if page, ok := r.process(entry); ok {
			r.add(page)
		}
		bar.Inc()
	}
	bar.Finish(i18n.T("PROCESSING_DONE"))
	summary.Elapsed = time.Since(start)
	pages := r.pages

	pdfPath := opts.PDF
	if pdfPath == "" {
		pdfPath = cfg.Export.PDF
	}
	if pdfPath != "" && len(pages) > 0 {
		if err := writeSheet(cfg, pages, pdfPath); err != nil {
			return summary, err
		}
		summary.PDF = pdfPath
		log.Info().Str("file", pdfPath).Int("pages", len(pages)).Msg("已写出 PDF")
	}
	return summary, nil
}

type runner struct {
	cfg      *config.AppConfig
	spec     layout.Spec
	fonts    markup.FontPair
	debugDir string
	written  mapset.Set[string]
	summary  *Summary
	log      zerolog.Logger

	// 按输出路径记录页面下标，重名的版面替换之前的页面
	pages []renderer.Page
	index map[string]int
}

func (r *runner) add(page renderer.Page) {
	if i, ok := r.index[page.Path]; ok {
		r.pages[i] = page
		return
	}
	r.index[page.Path] = len(r.pages)
	r.pages = append(r.pages, page)
	r.summary.Outputs = append(r.summary.Outputs, page.Path)
}

// process 处理单个目录项；返回 true 表示写出了一张版面。
func (r *runner) process(entry os.DirEntry) (renderer.Page, bool) {
	name := entry.Name()
	if entry.IsDir() || filepath.Ext(name) != MapExt {
		return renderer.Page{}, false
	}
	territory, err := ParseFilename(name)
	if err != nil {
		r.summary.Skipped++
		r.log.Warn().Str("file", name).Err(err).Msg("跳过文件")
		return renderer.Page{}, false
	}
	logger := r.log.With().Str("file", name).Str("territory", territory.Number).Logger()

	out := filepath.Join(r.cfg.OutputDirectory, territory.OutputName())
	if r.written.Has(out) {
		logger.Warn().Str("output", out).Msg("输出文件名重复，将覆盖之前的版面")
	}
	r.written.Put(out)

	job := layout.Job{
		MapPath:   filepath.Join(r.cfg.Map.MapsDirectory, name),
		Variables: territory.Variables(),
	}
	res, err := layout.Build(r.spec, job, layout.BuildOptions{Fonts: r.fonts})
	if err != nil {
		r.summary.Failure++
		stage := "layout"
		var stageErr *layout.StageError
		if errors.As(err, &stageErr) {
			stage = stageErr.Stage
		}
		logger.Error().Str("stage", stage).Err(err).Msg("处理地块失败")
		return renderer.Page{}, false
	}
	if r.debugDir != "" {
		path := filepath.Join(r.debugDir, territory.Stem+".json")
		if err := layout.WriteDebugJSON(res, path); err != nil {
			logger.Warn().Str("stage", "debug").Err(err).Msg("写出调试 JSON 失败")
		}
	}
	if err := imaging.Save(res.Canvas, out); err != nil {
		r.summary.Failure++
		logger.Error().Str("stage", "save").Err(err).Msg("保存版面失败")
		return renderer.Page{}, false
	}
	r.summary.Success++
	logger.Debug().Str("output", out).Msg("已写出版面")
	return renderer.Page{Name: territory.Stem, Caption: territory.Caption(), Path: out}, true
}

func writeSheet(cfg *config.AppConfig, pages []renderer.Page, path string) error {
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		DPI:    cfg.Export.DPI,
		Margin: cfg.PageMargin(),
	})
	data, err := r.Render(&renderer.Sheet{
		Title:   cfg.Layout.TextTitle,
		Subject: cfg.Layout.TextSubtitleLeft,
		Creator: "territorio",
		Pages:   pages,
	})
	if err != nil {
		return fmt.Errorf("生成 PDF 失败: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建 PDF 目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 PDF %s 失败: %w", path, err)
	}
	return nil
}

// Print 以彩色文本输出汇总。
func (s *Summary) Print(w io.Writer) {
	if s == nil {
		return
	}
	fmt.Fprintf(w, "\n\t %s\n", color.Style{color.OpBold}.Sprint(i18n.T("SUMMARY")))
	fmt.Fprintf(w, "\t %s\n", color.Green.Sprint(i18n.T("SUMMARY_SUCCESS", s.Success)))
	fail := i18n.T("SUMMARY_FAILURE", s.Failure)
	if s.Failure > 0 {
		fail = color.Red.Sprint(fail)
	}
	fmt.Fprintf(w, "\t %s\n", fail)
	if s.Skipped > 0 {
		fmt.Fprintf(w, "\t %s\n", color.Yellow.Sprint(i18n.T("SUMMARY_SKIPPED", s.Skipped)))
	}
	fmt.Fprintf(w, "\t %s\n", i18n.T("SUMMARY_ELAPSED", s.Elapsed.Round(10*time.Millisecond)))
	if s.PDF != "" {
		fmt.Fprintf(w, "\t %s\n", i18n.T("SUMMARY_PDF", s.PDF))
	}
	fmt.Fprintln(w)
}
