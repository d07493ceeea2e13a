package main

import (
	"flag"
	"os"

	"github.com/lumidiary/lumidiary/internal/platform/config"
	"github.com/lumidiary/lumidiary/internal/tools/secret"
)

func main() {
	cfg, err := secret.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := secret.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("generate secret: %v", err)
	}
}
