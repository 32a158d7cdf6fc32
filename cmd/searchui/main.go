package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lk2023060901/nitionsearch-console/internal/conf"
	"github.com/lk2023060901/nitionsearch-console/internal/pkg/logger"
	"github.com/lk2023060901/nitionsearch-console/internal/server"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/biz"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/provider"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/service"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "config file path (defaults and SEARCHUI_* env when empty)")
	serve      = flag.Bool("serve", false, "serve the search page over HTTP instead of the terminal console")
	logLevel   = flag.String("log-level", "", "override log.level")
	logFile    = flag.String("log-file", "", "also write logs to this file")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var opts []logger.Option
	if *logLevel != "" {
		opts = append(opts, logger.WithLevel(*logLevel))
	}
	if *logFile != "" {
		opts = append(opts, logger.WithFilename(*logFile))
	}
	log, err := logger.New(logger.Apply(&config.Log, opts...))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	policy, err := config.Render.MarkupPolicy()
	if err != nil {
		return err
	}

	nition, err := provider.NewNitionProvider(&config.Search, log.Named("provider").Logger)
	if err != nil {
		return fmt.Errorf("failed to create search provider: %w", err)
	}
	searchUseCase := biz.NewSearchUseCase(nition, log.Named("search").Logger)

	log.Info("config loaded",
		zap.String("api_host", config.Search.APIHost),
		zap.String("markup", string(policy)),
		zap.Bool("serve", *serve),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *serve {
		searchService := service.NewSearchService(searchUseCase, policy, config.Render.Title, log)
		return serveHTTP(ctx, config, log, server.NewHTTPServer(config, log, searchService))
	}

	console := service.NewConsole(searchUseCase, policy, os.Stdout, log)
	done := make(chan error, 1)
	go func() { done <- console.Run(ctx, os.Stdin) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
		return nil
	}
}

func serveHTTP(ctx context.Context, config *conf.Config, log *logger.Logger, httpServer *server.HTTPServer) error {
	errc := make(chan error, 1)
	go func() { errc <- httpServer.Start() }()

	fmt.Fprintf(os.Stdout, "search page at http://%s/\n", httpServer.Addr())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
		return err
	}
	return nil
}
