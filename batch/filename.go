package batch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/territorio/binding"
)

// ErrMalformedFilename 文件名不符合 "<编号>-<区域>.png" 格式。
var ErrMalformedFilename = errors.New("batch: 文件名格式无效")

// Territory 是从地图文件名中解析出的地块信息。
type Territory struct {
	Number string `json:"number"`
	Zone   string `json:"zone"`
	Stem   string `json:"stem"`
}

// ParseFilename 解析 "200-casal-monastero.png"：第一个 "-" 之前为编号，
// 之后为区域名（"-" 替换为空格并逐词首字母大写）。
func ParseFilename(name string) (Territory, error) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	number, rest, ok := strings.Cut(stem, "-")
	if !ok || strings.TrimSpace(number) == "" {
		return Territory{}, fmt.Errorf("%w: %s", ErrMalformedFilename, base)
	}
	zone := TitleCase(strings.ReplaceAll(rest, "-", " "))
	if zone == "" {
		return Territory{}, fmt.Errorf("%w: %s（缺少区域名）", ErrMalformedFilename, base)
	}
	return Territory{Number: number, Zone: zone, Stem: stem}, nil
}

// TitleCase 将每个单词的首字母大写，其余字母保持不变；连续空白合并为一个空格。
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// OutputName 返回版面文件名，例如 "200-casal-monastero.png"。
func (t Territory) OutputName() string {
	return fmt.Sprintf("%s-%s.png", t.Number, strings.ToLower(strings.ReplaceAll(t.Zone, " ", "-")))
}

// Caption 用于 PDF 图注。
func (t Territory) Caption() string {
	return t.Number + " - " + t.Zone
}

// Variables 返回模板变量 zone_name 与 territory_number。
func (t Territory) Variables() binding.Variables {
	return binding.ForTerritory(t.Zone, t.Number)
}
