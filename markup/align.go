package markup

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Align 文本水平对齐方式。
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ParseAlign 解析 left/center/right，并接受 start/end 别名。
func ParseAlign(v string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left", "start", "":
		return AlignLeft, nil
	case "center", "centre", "middle":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	default:
		return AlignLeft, fmt.Errorf("未知的对齐方式 %q", v)
	}
}

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Offset 根据原文与去标记文本的宽度差计算原点的水平偏移。
// 居中取一半（向零截断），右对齐取全部，使去标记文本的右边界与原文一致。
func (a Align) Offset(diff int) int {
	switch a {
	case AlignCenter:
		return diff / 2
	case AlignRight:
		return diff
	default:
		return 0
	}
}

func (a Align) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Align) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseAlign(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
