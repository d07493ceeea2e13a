package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumidiary/lumidiary/internal/platform/config"
	"github.com/lumidiary/lumidiary/internal/tools/seed"
)

func main() {
	cfg, err := seed.ParseConfig(flag.CommandLine, os.Args[1:], func(key string) (string, bool) {
		value, ok := os.LookupEnv(key)
		return value, ok
	})
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seed.Run(ctx, cfg, os.Stdout, nil); err != nil {
		config.Exitf("seed journal: %v", err)
	}
}
