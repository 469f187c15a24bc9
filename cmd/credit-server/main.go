package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/config"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/logging"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/server"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/simulation"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/tracing"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", "", "path to the simulator configuration file (banks, direct terms)")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to the server configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	envErr := godotenv.Load()

	serverConf, err := server.LoadConfig(*serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(serverConf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to load .env file",
			zap.String("op", "main"),
			zap.Error(envErr),
		)
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		logger.Fatal("failed to load configuration",
			zap.String("op", "main"),
			zap.String("path", *configLocation),
			zap.Error(err),
		)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	cat, err := conf.Catalog()
	if err != nil {
		logger.Fatal("failed to build bank catalog",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	directOpts, err := conf.DirectOptions()
	if err != nil {
		logger.Fatal("invalid direct policy",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.InitTracing(ctx, tracing.Config{
		Endpoint:       conf.Tracing.Endpoint,
		ServiceName:    conf.Tracing.ServiceName,
		ServiceVersion: version,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	sim := simulation.New(logger, cat, conf.DirectTerms(), simulation.Options{
		Direct: directOpts,
		Tracer: provider.Tracer(),
	})

	srv := &http.Server{
		Addr: serverConf.Address,
		Handler: server.NewHandler(logger, sim, server.Options{
			MaxBodySize: serverConf.BodySizeBytes(),
			Version:     version,
			MetricsPath: serverConf.MetricsPath,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
			zap.Strings("banks", cat.IDs()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case <-ctx.Done():
		logger.Info("shutting down",
			zap.String("op", "main"),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverConf.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
