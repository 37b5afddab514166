// Command seqd serves declarative numeric pipelines over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/version"
)

const serviceName = "seqd"

func main() {
	configFile := flag.String("config", "", "path to a config file (default: search standard locations)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	if err := run(*configFile); err != nil {
		logger.Error("seqd exited with error", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}
}

func run(configFile string) error {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	cfg, err := config.Load(serviceName, opts...)
	if err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}

	logger.Init(&cfg.Logging, cfg.Name)
	log := logger.GetGlobalLogger()

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.run(ctx)
}
