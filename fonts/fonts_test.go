package fonts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	for _, src := range []string{"builtin:goregular", "built-in:gobold", "builtin:GoMono"} {
		data, err := Load(src, "")
		if err != nil {
			t.Fatalf("加载 %s 失败: %v", src, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s 数据为空", src)
		}
	}
	if _, err := Load("builtin:roboto", ""); err == nil {
		t.Fatalf("未知内置字体应报错")
	}
}

func TestLoadRelativePath(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "fonts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fonts", "a.ttf"), []byte("ttf"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load("fonts/a.ttf", dir)
	if err != nil || string(data) != "ttf" {
		t.Fatalf("相对路径解析错误: %q %v", data, err)
	}
	if _, err := Load("fonts/missing.ttf", dir); err == nil {
		t.Fatalf("缺失的字体文件应报错")
	}
	if _, err := Load("  ", dir); err == nil {
		t.Fatalf("空路径应报错")
	}
}
