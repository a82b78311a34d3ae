package batch

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"
)

const (
	barWidth    = 40
	minBarWidth = 10
)

// progress 在终端上绘制单行进度条：msg [=====>-----] pos/len (pct%)。
type progress struct {
	w     io.Writer
	msg   string
	total int
	pos   int
	width int
}

func newProgress(w io.Writer, total int, msg string) *progress {
	p := &progress{w: w, msg: msg, total: total, width: barWidth}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			// 留出消息与计数的位置
			avail := cols - len(msg) - 24
			if avail < p.width {
				p.width = max(avail, minBarWidth)
			}
		}
	}
	p.draw()
	return p
}

func (p *progress) Inc() {
	if p == nil {
		return
	}
	p.pos++
	p.draw()
}

func (p *progress) Finish(msg string) {
	if p == nil {
		return
	}
	p.msg = msg
	p.pos = p.total
	p.draw()
	if p.w != nil {
		fmt.Fprintln(p.w)
	}
}

func (p *progress) draw() {
	if p == nil || p.w == nil {
		return
	}
	fmt.Fprint(p.w, "\r"+p.line())
}

func (p *progress) line() string {
	filled, pct := 0, 100
	if p.total > 0 {
		filled = p.pos * p.width / p.total
		pct = p.pos * 100 / p.total
	}
	var bar string
	switch {
	case filled >= p.width:
		bar = color.Cyan.Sprint(strings.Repeat("=", p.width))
	default:
		head := strings.Repeat("=", filled) + ">"
		bar = color.Cyan.Sprint(head) + color.Blue.Sprint(strings.Repeat("-", p.width-filled-1))
	}
	return fmt.Sprintf("%s [%s] %d/%d (%d%%)", p.msg, bar, p.pos, p.total, pct)
}
