package main

import (
	"flag"
	"os"

	"github.com/lumidiary/lumidiary/internal/platform/config"
	"github.com/lumidiary/lumidiary/internal/tools/token"
)

func main() {
	cfg, err := token.ParseConfig(flag.CommandLine, os.Args[1:], func(key string) (string, bool) {
		value, ok := os.LookupEnv(key)
		return value, ok
	})
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := token.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("mint token: %v", err)
	}
}
