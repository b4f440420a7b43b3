package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		url    string
		header string
		want   string
	}{
		{name: "default", url: "/", want: LocaleZH},
		{name: "english header", url: "/", header: "en-GB,en;q=0.9", want: LocaleEN},
		{name: "chinese header", url: "/", header: "zh-TW,zh;q=0.8", want: LocaleZH},
		{name: "unsupported header", url: "/", header: "xx", want: LocaleZH},
		{name: "query overrides header", url: "/?lang=en", header: "zh-CN", want: LocaleEN},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", tc.url, nil)
			if tc.header != "" {
				c.Request.Header.Set("Accept-Language", tc.header)
			}
			if got := ResolveLocale(c); got != tc.want {
				t.Fatalf("want %s got %s", tc.want, got)
			}
		})
	}
}

func TestTFallsBack(t *testing.T) {
	if got := T(LocaleEN, "error.post_not_found"); got != "Post not found" {
		t.Fatalf("unexpected english message %q", got)
	}
	if got := T("fr-FR", "error.post_not_found"); got != zhCN["error.post_not_found"] {
		t.Fatalf("unknown locale should fall back to chinese, got %q", got)
	}
	if got := T(LocaleEN, "error.no_such_key"); got != "error.no_such_key" {
		t.Fatalf("missing key should return itself, got %q", got)
	}
	if got := Sprintf(LocaleEN, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected formatted message %q", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range zhCN {
		if _, ok := enUS[key]; !ok {
			t.Fatalf("en-US missing key %s", key)
		}
	}
	for key := range enUS {
		if _, ok := zhCN[key]; !ok {
			t.Fatalf("zh-CN missing key %s", key)
		}
	}
}
