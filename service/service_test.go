package service

import (
	"os"

	"github.com/spiker/fick-server/config"
)

func init() {
	os.Setenv("SERVER_ENV", "test")
	config.SetupAll()
}
