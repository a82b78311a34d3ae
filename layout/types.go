package layout

import (
	"fmt"
	"image"

	"github.com/ByLCY/territorio/binding"
	"github.com/ByLCY/territorio/markup"
)

// Spec 描述一张版面：画布尺寸、边距、三段文本模板、字号与地图裁剪。
type Spec struct {
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	Margin        int        `json:"margin"`
	TitleMargin   int        `json:"titleMargin"`
	Title         string     `json:"title"`
	SubtitleLeft  string     `json:"subtitleLeft"`
	SubtitleRight string     `json:"subtitleRight"`
	TitleSize     float64    `json:"titleSize"`
	SubtitleSize  float64    `json:"subtitleSize"`
	Crop          CropInsets `json:"crop"`
}

// CropInsets 地图四边需要裁掉的像素数。
type CropInsets struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Job 是单个地块的输入：源地图路径与模板变量。
type Job struct {
	MapPath   string            `json:"mapPath"`
	Variables binding.Variables `json:"variables"`
}

// Result 是一次布局的产物与计算过程。
type Result struct {
	Canvas *image.NRGBA   `json:"-"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Texts  []*markup.Line `json:"texts"`
	Map    *MapBox        `json:"map,omitempty"`
	Job    Job            `json:"job"`
}

// MapBox 记录地图从源图到画布的变换。
type MapBox struct {
	Source       string          `json:"source"`
	SourceWidth  int             `json:"sourceWidth"`
	SourceHeight int             `json:"sourceHeight"`
	Crop         image.Rectangle `json:"crop"`
	Scale        float64         `json:"scale"`
	X            int             `json:"x"`
	Y            int             `json:"y"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
}

// Stage 名称，用于 StageError。
const (
	StageTitle         = "title"
	StageSubtitleLeft  = "subtitle-left"
	StageSubtitleRight = "subtitle-right"
	StageMeasure       = "measure"
	StageMap           = "map"
)

// StageError 标记 Build 在哪个阶段失败。
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("布局阶段 %s 失败: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
