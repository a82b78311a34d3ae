package markup

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// BoldMarker 切换粗体状态的标记。
const BoldMarker = "**"

var (
	templateLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Bold", Pattern: `\*\*`},
		{Name: "Var", Pattern: `<[^<>*]+>`},
		{Name: "Text", Pattern: `[^<*]+`},
		{Name: "Char", Pattern: `[<*]`},
	})

	templateParser = participle.MustBuild[Template](
		participle.Lexer(templateLexer),
	)
)

// Template is the parsed form of a single-line markup template.
type Template struct {
	Source string  `parser:"" json:"source"`
	Parts  []*Part `parser:"@@*" json:"parts"`
}

// Part is one token of a template: a bold marker, a placeholder or literal text.
type Part struct {
	Bold bool    `parser:"  @Bold" json:"bold,omitempty"`
	Var  *string `parser:"| @Var" json:"var,omitempty"`
	Text *string `parser:"| @(Text | Char)" json:"text,omitempty"`
}

// Name 返回占位符去掉尖括号后的变量名。
func (p *Part) Name() string {
	if p == nil || p.Var == nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(*p.Var, "<"), ">")
}

// Markers 统计模板中的粗体标记数量。
func (t *Template) Markers() int {
	n := 0
	for _, p := range t.Parts {
		if p.Bold {
			n++
		}
	}
	return n
}

// Parse 将模板文本拆分为标记、占位符与普通文本。
func Parse(source string) (*Template, error) {
	if source == "" {
		return &Template{}, nil
	}
	tpl, err := templateParser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("解析模板 %q 失败: %w", source, err)
	}
	tpl.Source = source
	return tpl, nil
}
