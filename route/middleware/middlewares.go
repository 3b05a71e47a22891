package middleware

import (
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/route/shared"
)

func SessionLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := log.WithFields(log.Fields{"request_id": c.Response().Header().Get(echo.HeaderXRequestID)})
		c.Set(shared.ContextSessionLoggerKey, logger)
		return next(c)
	}
}

func I18n(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		acceptLang := c.Request().Header.Get(shared.HeaderAcceptLanguage)
		paramLang := c.QueryParam("lang")

		localizer := lib.NewLocalizer(paramLang, acceptLang)
		c.Set(shared.ContextI18NLangKey, localizer)

		return next(c)
	}
}

// 以降のハンドラにカスタマイズしたコンテキストを渡す。
func CustomContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return next(&shared.Context{Context: c})
	}
}
