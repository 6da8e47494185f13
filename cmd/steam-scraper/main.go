package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stmdev/steam-game-scraper/internal/batch"
	"github.com/stmdev/steam-game-scraper/internal/config"
	"github.com/stmdev/steam-game-scraper/internal/fetch"
	"github.com/stmdev/steam-game-scraper/internal/parser"
	"github.com/stmdev/steam-game-scraper/internal/ratelimit"
	"github.com/stmdev/steam-game-scraper/internal/scraper"
	"github.com/stmdev/steam-game-scraper/internal/storage"
	"github.com/stmdev/steam-game-scraper/pkg/logger"
)

func main() {
	var (
		inputFile  = flag.String("input", "", "File with game names, one per line (default games_list.txt)")
		outputFile = flag.String("output", "", "Output .xlsx file (default steam_games.xlsx)")
		delay      = flag.Duration("delay", 0, "Delay between requests (default 1s)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *inputFile != "" {
		cfg.Scraper.InputFile = *inputFile
	}
	if *outputFile != "" {
		cfg.Scraper.OutputFile = *outputFile
	}
	if *delay > 0 {
		cfg.Scraper.RequestDelay = *delay
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("starting steam game scraper")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutdown signal received, flushing before exit", "signal", sig.String())
		cancel()
	}()

	client, err := fetch.NewClient(cfg.Session, cfg.Scraper.RequestTimeout, logger)
	if err != nil {
		logger.Error("failed to initialize session", "error", err)
		os.Exit(1)
	}

	if cfg.Scraper.CheckAuth {
		probeCtx, probeCancel := context.WithTimeout(ctx, 15*time.Second)
		client.CheckAuth(probeCtx)
		probeCancel()
	}

	resolver := scraper.NewResolver(client, cfg.Scraper.MinMatchScore, logger)
	fetcher := scraper.NewDetailFetcher(client, parser.NewSteamParser(), logger)
	store := storage.NewTableStore(cfg.Scraper.OutputFile, logger)
	limiter := ratelimit.NewFixedRateLimiter(cfg.Scraper.RequestDelay)

	orchestrator := batch.NewOrchestrator(resolver, fetcher, store, limiter, logger)
	orchestrator.CheckpointEvery = cfg.Scraper.CheckpointEvery

	processed, err := orchestrator.Run(ctx, cfg.Scraper.InputFile)
	if err != nil {
		if errors.Is(err, batch.ErrEmptyInput) {
			logger.Error("no games to process", "input", cfg.Scraper.InputFile)
		} else {
			logger.Error("batch failed", "error", err)
		}
		os.Exit(1)
	}

	logger.Info("processing complete", "processed", processed)
}
