package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	streakcmd "github.com/lumidiary/lumidiary/internal/cmd/streak"
)

func main() {
	cfg, err := streakcmd.ParseConfig(flag.CommandLine, os.Args[1:], func(key string) (string, bool) {
		value, ok := os.LookupEnv(key)
		return value, ok
	})
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[STREAK] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := streakcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
