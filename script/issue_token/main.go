package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/spiker/fick-server/config"
	"github.com/spiker/fick-server/lib"
)

func main() {
	config.SetupAll()

	// コマンドライン引数
	flag.Parse()
	args := flag.Args()

	if len(args) != 1 {
		log.Fatal("usage: go run main.go [subject]")
	}

	if !lib.AuthenticationEnabled() {
		log.Fatal("JWT_SECRET is not configured; authentication is disabled")
	}

	token, err := lib.CreateToken(args[0], time.Now())

	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}
