package layout

import "github.com/ByLCY/territorio/markup"

// BuildOptions 配置布局阶段所需的依赖，例如字体后端。
type BuildOptions struct {
	Fonts markup.FontPair
}
