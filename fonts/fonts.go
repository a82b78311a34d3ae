package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinPrefix 标记内置字体，例如 "builtin:goregular"。
const BuiltinPrefix = "builtin:"

var builtin = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"gomono":    gomono.TTF,
}

// Builtin 返回所有内置字体名，按字母排序。
func Builtin() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load 返回字体的字节数据。src 可写为 "builtin:<name>"（也接受 "built-in:"）或文件路径；
// 相对路径基于 baseDir 解析，baseDir 为空时基于当前工作目录。
func Load(src, baseDir string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("字体路径为空")
	}
	if name, ok := builtinName(src); ok {
		data, found := builtin[name]
		if !found {
			return nil, fmt.Errorf("找不到内置字体资源 %s%s（可用: %s）", BuiltinPrefix, name, strings.Join(Builtin(), ", "))
		}
		return data, nil
	}
	path := src
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", src, err)
	}
	return data, nil
}

func builtinName(src string) (string, bool) {
	for _, prefix := range []string{BuiltinPrefix, "built-in:"} {
		if strings.HasPrefix(src, prefix) {
			return strings.ToLower(strings.TrimPrefix(src, prefix)), true
		}
	}
	return "", false
}
