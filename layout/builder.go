package layout

import (
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/territorio/markup"
)

// Build 生成一张完整的地块版面：白色画布、标题、左右副标题与地图。
// 任一步骤失败时返回 *StageError，不产生部分结果。
func Build(spec Spec, job Job, opts BuildOptions) (*Result, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", spec.Width, spec.Height)
	}
	if opts.Fonts == nil {
		return nil, fmt.Errorf("缺少字体后端")
	}
	fonts := opts.Fonts

	titleFace, err := fonts.Face(markup.Bold, spec.TitleSize)
	if err != nil {
		return nil, &StageError{Stage: StageMeasure, Err: fmt.Errorf("%w: %v", markup.ErrFont, err)}
	}
	subtitleFace, err := fonts.Face(markup.Regular, spec.SubtitleSize)
	if err != nil {
		return nil, &StageError{Stage: StageMeasure, Err: fmt.Errorf("%w: %v", markup.ErrFont, err)}
	}
	titleX := (spec.Width - titleFace.TextWidth(spec.Title)) / 2
	leftX := spec.Margin
	rightX := spec.Width - subtitleFace.TextWidth(spec.SubtitleRight) - spec.Margin
	titleY := spec.Margin
	subtitleY := titleY + spec.TitleMargin

	canvas := imaging.New(spec.Width, spec.Height, color.White)
	res := &Result{Canvas: canvas, Width: spec.Width, Height: spec.Height, Job: job}

	texts := []struct {
		stage  string
		source string
		size   float64
		x, y   int
		align  markup.Align
	}{
		{StageTitle, spec.Title, spec.TitleSize, titleX, titleY, markup.AlignCenter},
		{StageSubtitleLeft, spec.SubtitleLeft, spec.SubtitleSize, leftX, subtitleY, markup.AlignLeft},
		{StageSubtitleRight, spec.SubtitleRight, spec.SubtitleSize, rightX, subtitleY, markup.AlignRight},
	}
	for _, t := range texts {
		line, err := markup.Render(canvas, t.source, job.Variables, fonts, t.size, t.x, t.y, t.align)
		if err != nil {
			return nil, &StageError{Stage: t.stage, Err: err}
		}
		res.Texts = append(res.Texts, line)
	}

	box, err := Composite(canvas, job.MapPath, spec.Margin, spec.Crop)
	if err != nil {
		return nil, &StageError{Stage: StageMap, Err: err}
	}
	res.Map = box
	return res, nil
}
