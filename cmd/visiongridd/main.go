package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/visiongrid/internal/config"
	"github.com/khaledhikmat/visiongrid/internal/lgr"
	"github.com/khaledhikmat/visiongrid/internal/registry"
	"github.com/khaledhikmat/visiongrid/internal/rpc"
)

const version = "1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "print usage and exit")
		showVersion = flag.Bool("version", false, "print version and exit")
		port        = flag.Int("port", 0, "grpc listen port (overrides the configured default)")
		host        = flag.String("host", "", "grpc listen host (overrides the configured default)")
	)
	flag.BoolVar(showHelp, "h", false, "print usage and exit")
	flag.BoolVar(showVersion, "v", false, "print version and exit")
	flag.Parse()

	if *showHelp {
		fmt.Println("visiongridd - multi-tenant vision ingest service")
		flag.PrintDefaults()
		return
	}
	if *showVersion {
		fmt.Println(version)
		return
	}

	rootCtx := context.Background()
	canxCtx, canxFn := context.WithCancel(rootCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		lgr.Logger.Info("received kill signal", slog.Any("signal", sig))
		canxFn()
	}()

	if os.Getenv("RUN_TIME_ENV") == "dev" || os.Getenv("RUN_TIME_ENV") == "" {
		lgr.Logger.Info("loading env vars from .env file")
		if err := godotenv.Load(); err != nil {
			lgr.Logger.Warn("no .env file loaded", slog.Any("error", xerrors.New(err.Error())))
		}
	}

	cfgSvc := config.NewHardCoded()

	grpcHost := cfgSvc.GetGRPCHost()
	if *host != "" {
		grpcHost = *host
	}
	grpcPort := cfgSvc.GetGRPCPort()
	if *port != 0 {
		grpcPort = *port
	}

	reg := registry.New(cfgSvc.GetMaxConcurrentStreams(), cfgSvc.GetDefaultCameraConfig())
	svc := rpc.NewService(reg, cfgSvc)

	server, err := rpc.NewServer(grpcHost, grpcPort, svc)
	if err != nil {
		lgr.Logger.Error("failed to start grpc server", slog.Any("error", xerrors.New(err.Error())))
		os.Exit(1)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()

	uptimeInterval := time.Duration(cfgSvc.GetUptimeLogIntervalSec()) * time.Second
	ticker := time.NewTicker(uptimeInterval)
	defer ticker.Stop()

	start := time.Now()

loop:
	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info("vision service context cancelled")
			break loop

		case err := <-serveErr:
			if err != nil {
				lgr.Logger.Error("grpc server exited", slog.Any("error", xerrors.New(err.Error())))
			}
			break loop

		case <-ticker.C:
			lgr.Logger.Info("vision service uptime",
				slog.Float64("uptime_seconds", time.Since(start).Seconds()),
				slog.Int("active_streams", reg.ActiveStreamsCount()),
			)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfgSvc.GetShutdownGraceSec())*time.Second)
	defer shutdownCancel()

	lgr.Logger.Info("vision service shutting down")
	server.Stop(shutdownCtx)
	reg.Shutdown(shutdownCtx)
}
