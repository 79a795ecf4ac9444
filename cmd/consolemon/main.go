package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/fj604/ec2-console-log-monitor/internal/app"
	"github.com/fj604/ec2-console-log-monitor/internal/config"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("consolemon: %v", err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("consolemon failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("consolemon: %v", err)
	}
}
