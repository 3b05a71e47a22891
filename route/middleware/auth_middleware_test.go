package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware_SkipPatterns(t *testing.T) {
	skips := SkipPatterns{
		{
			Methods:   []string{http.MethodGet},
			PathRegex: regexp.MustCompile(`^/1/info$`),
		},
		{
			Methods:   []string{http.MethodGet, http.MethodHead},
			PathRegex: regexp.MustCompile(`^/health`),
		},
	}

	e := echo.New()

	for _, c := range []struct {
		method   string
		path     string
		expected bool
	}{
		{http.MethodGet, "/1/info", true},
		{http.MethodPost, "/1/info", false},
		{http.MethodGet, "/1/info/extra", false},
		{http.MethodGet, "/1/fick", false},
		{http.MethodHead, "/health", true},
		{http.MethodGet, "/health?verbose=1", true},
	} {
		req := httptest.NewRequest(c.method, c.path, nil)
		ctx := e.NewContext(req, httptest.NewRecorder())

		assert.Equal(t, c.expected, skips.Match(ctx), "%s %s", c.method, c.path)
	}

	assert.False(t, SkipPatterns{}.Match(e.NewContext(httptest.NewRequest(http.MethodGet, "/1/info", nil), httptest.NewRecorder())))
}
