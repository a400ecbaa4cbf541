package fonts

import "testing"

func TestLoadBuiltin(t *testing.T) {
	for _, name := range Names() {
		data, err := Load("embed:" + name)
		if err != nil {
			t.Fatalf("加载 %s 失败: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s 数据为空", name)
		}
	}
	if _, err := Load("embed:Go-Bold.ttf"); err != nil {
		t.Fatalf("应忽略 .ttf 后缀: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, src := range []string{"", "embed:Missing", "/definitely/not/here.ttf"} {
		if _, err := Load(src); err == nil {
			t.Fatalf("%q 应返回错误", src)
		}
	}
}
