package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"vcombat/pkg/defs"
	"vcombat/pkg/logging"
	"vcombat/pkg/server"
	"vcombat/pkg/shared/config"
	"vcombat/pkg/shared/world"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	addr := flag.String("addr", "", "Listen address, overrides the config")
	scenePath := flag.String("scene", "", "Scene to host, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Bridge.Addr = *addr
	}
	if *scenePath != "" {
		cfg.Bridge.Scene = *scenePath
	}

	log := logging.Must(cfg.LogLevel)
	defer log.Sync()

	if _, err := defs.NewLoader(log).Bootstrap(cfg.Defs); err != nil {
		log.Fatal("definitions", zap.Error(err))
	}

	var scene *world.SceneDefinition
	if cfg.Bridge.Scene != "" {
		if scene, err = world.LoadScene(cfg.Bridge.Scene); err != nil {
			log.Fatal("scene", zap.Error(err))
		}
	}

	bridge, err := server.NewBridgeServer(log, scene, cfg.Sandbox.Seed)
	if err != nil {
		log.Fatal("bridge", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := bridge.Run(ctx, cfg.Bridge.Addr, cfg.Bridge.Path); err != nil {
		log.Error("bridge stopped", zap.Error(err))
	}
}
