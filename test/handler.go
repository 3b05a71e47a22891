package test

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/spiker/fick-server/config"
	app_middleware "github.com/spiker/fick-server/route/middleware"
	"github.com/spiker/fick-server/route/shared"
)

// テスト用のハンドラ。APIは呼び出し側で登録する。
func TestHandler() *echo.Echo {
	os.Setenv("SERVER_ENV", "test")
	config.SetupAll()

	e := echo.New()

	e.HideBanner = true
	e.HTTPErrorHandler = shared.APIErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(config.ServerConfig().BodyLimit))
	e.Use(middleware.RequestID())
	e.Use(app_middleware.SessionLogger)
	e.Use(app_middleware.I18n)
	e.Use(app_middleware.CustomContext)

	return e
}
