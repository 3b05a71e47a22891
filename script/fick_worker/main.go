package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/spiker/fick-server/config"
	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/resource/queue"
	"github.com/spiker/fick-server/route/rpc"
	S "github.com/spiker/fick-server/service"
)

func main() {
	config.SetupAll()

	lang := flag.String("lang", "en", "language of error messages")
	flag.Parse()

	logger := log.WithField("component", "fick_worker")

	service := &S.FickService{
		Service: &S.Service{Log: logger},
		Cache:   lib.GetCache(),
	}

	handler := rpc.NewHandler(service, lib.NewLocalizer(*lang))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := queue.NewWorker(config.AMQPConfig(), handler.Handle, logger)

	if err := worker.Run(ctx); err != nil {
		logger.WithError(err).Fatal("worker failed")
	}
}
