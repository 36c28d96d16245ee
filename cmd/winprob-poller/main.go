package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/config"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/gate"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/providers/espn"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/providers/yahoo"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/publisher"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/store"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/winprob"
)

func main() {
	log.Println("Starting win-probability poller...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	yahooClient := yahoo.New(cfg.YahooBaseURL, cfg.LeagueKey, yahoo.Credentials{
		ClientID:     cfg.YahooClientID,
		ClientSecret: cfg.YahooClientSecret,
		RefreshToken: cfg.YahooRefreshToken,
		TokenURL:     cfg.YahooTokenURL,
	})
	espnClient := espn.New(cfg.ScheduleBaseURL, loc)

	scheduleGate := gate.New(espnClient)
	fetcher := winprob.NewFetcher(yahooClient)
	appender := winprob.NewAppender(
		store.NewRedisSeriesStore(redisClient),
		publisher.NewStreamPublisher(redisClient),
		loc,
	)
	poller := winprob.NewPoller(scheduleGate, fetcher, appender, cfg.PollInterval, cfg.CycleTimeout)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	// Metrics endpoint for scraping; the poller itself has no API surface.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.APIAddr, mux); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	poller.Run(ctx)

	log.Println("Win-probability poller stopped")
}
