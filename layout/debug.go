package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteDebugJSON 将一次布局的文本片段与地图变换写成 JSON，便于核对坐标。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化布局 %s 失败: %w", res.Job.MapPath, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写出调试 JSON %s 失败: %w", path, err)
	}
	return nil
}
