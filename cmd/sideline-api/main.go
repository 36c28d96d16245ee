package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/cache"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/config"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/handlers"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/polls"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/providers/espn"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/providers/yahoo"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/store"
)

func main() {
	log.Println("Starting Sideline API...")

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

	pollStore, err := polls.NewPostgresStore(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pollStore.Close()
	log.Println("Connected to Postgres")

	yahooClient := yahoo.New(cfg.YahooBaseURL, cfg.LeagueKey, yahoo.Credentials{
		ClientID:     cfg.YahooClientID,
		ClientSecret: cfg.YahooClientSecret,
		RefreshToken: cfg.YahooRefreshToken,
		TokenURL:     cfg.YahooTokenURL,
	})
	espnClient := espn.New(cfg.ScheduleBaseURL, loc)

	fantasyHandler := handlers.NewFantasyHandler(yahooClient, cache.NewRedisWriter(redisClient))
	seriesHandler := handlers.NewSeriesHandler(store.NewRedisSeriesStore(redisClient), loc)
	pollsHandler := handlers.NewPollsHandler(pollStore)
	icesHandler := handlers.NewIcesHandler(yahooClient, espnClient)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handlers.HealthCheck("sideline-api"))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/standings", fantasyHandler.GetStandings)
		r.Get("/scoreboard", fantasyHandler.GetScoreboard)
		r.Get("/teams/{teamKey}/roster", fantasyHandler.GetRoster)
		r.Get("/draft", fantasyHandler.GetDraft)
		r.Get("/players", fantasyHandler.GetPlayers)

		r.Get("/winprob/{season}/{week}", seriesHandler.GetWeek)
		r.Get("/winprob/{season}/{week}/{matchupID}", seriesHandler.GetMatchup)

		r.Post("/polls", pollsHandler.CreatePoll)
		r.Get("/polls", pollsHandler.ListPolls)
		r.Get("/polls/{pollID}", pollsHandler.GetPoll)
		r.Post("/polls/{pollID}/votes", pollsHandler.Vote)
		r.Get("/polls/{pollID}/results", pollsHandler.Results)

		r.Get("/ices", icesHandler.GetIces)
	})

	server := &http.Server{
		Addr:         cfg.APIAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Listening on %s", cfg.APIAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Sideline API stopped")
}
