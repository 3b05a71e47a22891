package calculator

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	app_middleware "github.com/spiker/fick-server/route/middleware"
	"github.com/spiker/fick-server/route/shared"
)

func RegisterAPI(e *echo.Echo) {
	router := e.Group("/1")

	router.Use(app_middleware.Authentication(app_middleware.SkipPatterns{
		{
			Methods:   []string{http.MethodGet},
			PathRegex: regexp.MustCompile(`^/1/info$`),
		},
	})...)

	registerAPIs(router)
}

func registerAPIs(router *echo.Group) {
	router.GET("/info", shared.C(fetchInfo))

	// 計算。
	router.GET("/fick", shared.C(calculateFromQuery))
	router.POST("/fick", shared.C(calculate))
	router.POST("/fick/batch", shared.C(calculateBatch))
}
