package binding

import (
	"regexp"
	"strings"
)

// 模板变量名，对应 <zone_name> 与 <territory_number> 占位符。
const (
	ZoneName        = "zone_name"
	TerritoryNumber = "territory_number"
)

var placeholderPattern = regexp.MustCompile(`<([^<>*]+)>`)

// Variable 是一个键值对，键区分大小写。
type Variable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Variables 是按插入顺序保存的替换表，每次渲染单独构造。
type Variables []Variable

// ForTerritory 构造单个地块所需的变量。
func ForTerritory(zoneName, number string) Variables {
	return Variables{
		{Key: ZoneName, Value: zoneName},
		{Key: TerritoryNumber, Value: number},
	}
}

// Lookup 返回 key 对应的值；重复键以先出现者为准。
func (v Variables) Lookup(key string) (string, bool) {
	for _, item := range v {
		if item.Key == key {
			return item.Value, true
		}
	}
	return "", false
}

// Set 覆盖已有键或在末尾追加。
func (v Variables) Set(key, value string) Variables {
	for i := range v {
		if v[i].Key == key {
			v[i].Value = value
			return v
		}
	}
	return append(v, Variable{Key: key, Value: value})
}

// Interpolate 将文本中的 <key> 替换为对应的值。
// 未定义的占位符原样保留；替换后的值不会再次参与替换。
func Interpolate(text string, vars Variables) string {
	if len(vars) == 0 || !strings.Contains(text, "<") {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := match[1 : len(match)-1]
		if val, ok := vars.Lookup(key); ok {
			return val
		}
		return match
	})
}
