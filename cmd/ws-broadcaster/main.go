package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/config"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/consumer"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/handlers"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/hub"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/wsclient"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func main() {
	log.Println("Starting win-probability broadcaster...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	h := hub.New()
	go h.Run(ctx)

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "broadcaster-1"
	}
	streamConsumer := consumer.NewStreamConsumer(redisClient, h, "ws-broadcaster", hostname)
	go func() {
		if err := streamConsumer.Start(ctx); err != nil {
			log.Printf("Stream consumer error: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade error: %v", err)
			return
		}
		c := wsclient.New(uuid.New().String(), conn, h)
		h.Register(c)
		go c.WritePump(ctx)
		go c.ReadPump(ctx)
	})
	mux.HandleFunc("/health", handlers.HealthCheck("ws-broadcaster"))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.WSAddr, Handler: mux}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
		server.Close()
	}()

	log.Printf("Listening on %s", cfg.WSAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Win-probability broadcaster stopped")
}
