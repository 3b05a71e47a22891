package shared

import (
	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/spiker/fick-server/lib"
)

const (
	ContextSessionLoggerKey = "session_logger"
	ContextI18NLangKey      = "lang_key"
	ContextMeKey            = "me"
)

const (
	HeaderAcceptLanguage = "Accept-Language"
)

type Context struct {
	echo.Context
}

type contextFunc func(c *Context) error

// C カスタマイズしたコンテキストをWrapする
func C(ctxFunc contextFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cc, ok := c.(*Context); ok {
			return ctxFunc(cc)
		}
		return ctxFunc(&Context{c})
	}
}

// 計算結果キャッシュ。無効化されている場合はnil。
func (c *Context) GetCache() *cache.Cache {
	return lib.GetCache()
}

func (c *Context) Log() *logrus.Entry {
	if logger, ok := c.Get(ContextSessionLoggerKey).(*logrus.Entry); ok {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func (c *Context) Localizer() *lib.Localizer {
	if localizer, ok := c.Get(ContextI18NLangKey).(*lib.Localizer); ok {
		return localizer
	}
	return lib.NewLocalizer()
}

// 認証済みのサブジェクト。認証が無効な場合は空。
func (c *Context) Me() string {
	if me, ok := c.Get(ContextMeKey).(string); ok {
		return me
	}
	return ""
}
