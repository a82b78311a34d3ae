// Package i18n translates the terminal strings of the menu and the batch summary.
package i18n

import (
	"embed"
	"os"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var catalogs embed.FS

// DefaultLanguage 在没有匹配的翻译时使用。
const DefaultLanguage = "en"

var (
	mu      sync.RWMutex
	current = load(DefaultLanguage)
	lang    = DefaultLanguage
)

// Languages 返回内置的语言代码。
func Languages() []string {
	entries, _ := catalogs.ReadDir("locales")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".po"))
	}
	return out
}

// Normalize 将 "it_IT.UTF-8" 之类的值转换为内置语言代码；不支持时返回默认语言。
func Normalize(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if i := strings.IndexAny(v, "_.-@"); i >= 0 {
		v = v[:i]
	}
	for _, l := range Languages() {
		if l == v {
			return l
		}
	}
	return DefaultLanguage
}

// FromEnv 按 LC_ALL、LC_MESSAGES、LANG 的顺序选择语言。
func FromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return Normalize(v)
		}
	}
	return DefaultLanguage
}

// Setup 切换当前语言并返回实际使用的语言代码。
func Setup(language string) string {
	l := Normalize(language)
	po := load(l)
	mu.Lock()
	current, lang = po, l
	mu.Unlock()
	return l
}

// Language 返回当前语言代码。
func Language() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// lookup 通过函数变量调用，消息 id 不是格式串，避免 vet 将 T 视为 printf 包装。
var lookup = (*gotext.Po).Get

// T 返回 id 的翻译，vars 按翻译文本中的格式符格式化。缺少翻译时返回 id 本身。
func T(id string, vars ...any) string {
	mu.RLock()
	po := current
	mu.RUnlock()
	return lookup(po, id, vars...)
}

func load(language string) *gotext.Po {
	po := gotext.NewPo()
	data, err := catalogs.ReadFile("locales/" + language + ".po")
	if err != nil {
		return po
	}
	po.Parse(data)
	return po
}
