package calculator

import (
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/test"
)

func testHandler() *echo.Echo {
	e := test.TestHandler()

	RegisterAPI(e)

	return e
}

func testToken(t *testing.T) string {
	token, err := lib.CreateToken("tester", time.Now())
	assert.NoError(t, err)
	return token
}
