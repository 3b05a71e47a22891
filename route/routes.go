package route

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/spiker/fick-server/config"
	"github.com/spiker/fick-server/route/calculator"
	app_middleware "github.com/spiker/fick-server/route/middleware"
	"github.com/spiker/fick-server/route/shared"
)

func NewHandler() *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.HTTPErrorHandler = shared.APIErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(config.ServerConfig().BodyLimit))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	e.Use(app_middleware.SessionLogger)
	e.Use(app_middleware.I18n)
	e.Use(app_middleware.CustomContext)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	calculator.RegisterAPI(e)

	return e
}
