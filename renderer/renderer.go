package renderer

import "image"

// Page 是输出文档中的一页，对应一张已生成的地块版面。
// Image 非空时直接使用，否则从 Path 读取。
type Page struct {
	Name    string
	Caption string
	Path    string
	Image   image.Image
}

// Sheet 是待输出的多页文档。
type Sheet struct {
	Title    string
	Subject  string
	Author   string
	Creator  string
	Keywords []string
	Pages    []Page
}

// Renderer 将多张版面输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(sheet *Sheet) ([]byte, error)
}
