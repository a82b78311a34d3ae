package i18n

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"it_IT.UTF-8": "it",
		"IT":          "it",
		"en_US":       "en",
		"de_DE":       DefaultLanguage,
		"":            DefaultLanguage,
		"C":           DefaultLanguage,
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q want %q", in, got, want)
		}
	}
}

func TestSetupTranslates(t *testing.T) {
	defer Setup(DefaultLanguage)

	if got := Setup("it_IT.UTF-8"); got != "it" || Language() != "it" {
		t.Fatalf("Setup 返回错误语言: %q", got)
	}
	if got := T("MENU_EXIT"); got != "Esci" {
		t.Fatalf("意大利语翻译错误: %q", got)
	}
	if got := T("SUMMARY_SUCCESS", 3); got != "Riuscite: 3" {
		t.Fatalf("带参数的翻译错误: %q", got)
	}

	Setup("en")
	if got := T("MENU_PROCESS"); got != "Process images and create layouts" {
		t.Fatalf("英语翻译错误: %q", got)
	}
	if got := T("NOT_A_KEY"); got != "NOT_A_KEY" {
		t.Fatalf("缺少翻译时应返回 id: %q", got)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "it_IT.UTF-8")
	if got := FromEnv(); got != "it" {
		t.Fatalf("FromEnv = %q", got)
	}
}

func TestTFormatsTranslatedVerbs(t *testing.T) {
	defer Setup(DefaultLanguage)
	Setup("en")
	if got := T("EDIT_PROMPT", "Layout Width", "1000"); got != "New value for Layout Width (current: 1000): " {
		t.Fatalf("参数应按翻译文本中的格式符替换: %q", got)
	}
	if got := T("SUMMARY_ELAPSED", "1.5s"); got != "Time taken: 1.5s" {
		t.Fatalf("SUMMARY_ELAPSED 格式错误: %q", got)
	}
}
