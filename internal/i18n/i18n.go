// Package i18n 提供接口错误消息的多语言文案。
package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleZH = "zh-CN"
	LocaleEN = "en-US"
)

// localeQueryKey 允许通过查询参数覆盖 Accept-Language
const localeQueryKey = "lang"

var supportedTags = []language.Tag{
	language.SimplifiedChinese,
	language.AmericanEnglish,
}

var matcher = language.NewMatcher(supportedTags)

var catalogs = map[string]map[string]string{
	LocaleZH: zhCN,
	LocaleEN: enUS,
}

// ResolveLocale 按查询参数、Accept-Language 的顺序解析语言，默认中文
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return LocaleZH
	}
	if raw := strings.TrimSpace(c.Query(localeQueryKey)); raw != "" {
		return Normalize(raw)
	}
	header := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if header == "" {
		return LocaleZH
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LocaleZH
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LocaleZH
	}
	return localeOf(supportedTags[index])
}

// Normalize 将任意语言标签归一化为受支持的 locale
func Normalize(raw string) string {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return LocaleZH
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return LocaleZH
	}
	return localeOf(supportedTags[index])
}

func localeOf(tag language.Tag) string {
	base, _ := tag.Base()
	if base.String() == "en" {
		return LocaleEN
	}
	return LocaleZH
}

// T 查找文案，缺失时回退中文，再缺失返回 key 本身
func T(locale, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := zhCN[key]; ok {
		return msg
	}
	return key
}

// Sprintf 查找文案并格式化参数
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
