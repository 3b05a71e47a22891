package middleware

import (
	"regexp"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	C "github.com/spiker/fick-server/constant"
	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/route/shared"
)

const (
	authScheme  string = "Bearer"
	jwtTokenKey string = "token"
)

// SkipPattern Middlewareを実行しないパターン。
type SkipPattern struct {
	Methods   []string
	PathRegex *regexp.Regexp
}

type SkipPatterns []SkipPattern

func (p SkipPatterns) Match(c echo.Context) bool {
	for _, pattern := range p {
		for _, method := range pattern.Methods {
			if method == c.Request().Method {
				if matched := pattern.PathRegex.MatchString(c.Request().URL.Path); matched {
					return true
				}
			}
		}
	}
	return false
}

// JWTによる認証。シークレットが設定されていない場合は何もしない。
func Authentication(skips SkipPatterns) []echo.MiddlewareFunc {
	if !lib.AuthenticationEnabled() {
		return []echo.MiddlewareFunc{}
	}

	return []echo.MiddlewareFunc{
		middleware.JWTWithConfig(middleware.JWTConfig{
			Skipper:    skips.Match,
			ContextKey: jwtTokenKey,
			SigningKey: []byte(lib.GetSecret()),
			AuthScheme: authScheme,
			ErrorHandlerWithContext: func(err error, c echo.Context) error {
				return C.NewUnauthorizedError(
					"invalid_token",
					err.Error(),
					map[string]interface{}{},
				)
			},
		}),
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				if skips.Match(c) {
					return next(c)
				}

				token, ok := c.Get(jwtTokenKey).(*jwt.Token)

				if !ok {
					return C.NewUnauthorizedError(
						"token_not_found",
						"Token was parsed but missed unexpectedly",
						map[string]interface{}{},
					)
				}

				subject, err := lib.VerifyToken(token)

				if err != nil {
					return err
				}

				c.Set(shared.ContextMeKey, subject)

				(&shared.Context{Context: c}).Log().WithField("subject", subject).Debug("authenticated")

				return next(c)
			}
		},
	}
}
