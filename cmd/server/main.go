package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"courier-route-service/internal/api"
	"courier-route-service/internal/config"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/geocode"
	"courier-route-service/internal/geocode/cache"
	"courier-route-service/internal/route"
	"courier-route-service/internal/validation"
)

// main is the application composition root.
// It wires the cache store, geocode client, and distance engine behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	// Hub defaults to the New York dispatch facility.
	hub := domain.Coordinates{
		Lat: config.GetFloat("HUB_LAT", 40.7128),
		Lon: config.GetFloat("HUB_LON", -74.0060),
	}

	client := geocode.NewClient(newStore(), geocode.Config{
		BaseURL:     config.Get("GEOCODER_BASE_URL", ""),
		UserAgent:   config.Get("GEOCODER_USER_AGENT", ""),
		MinInterval: config.GetDuration("GEOCODE_MIN_INTERVAL", time.Second),
		Timeout:     config.GetDuration("GEOCODE_TIMEOUT", 10*time.Second),
	})

	validator := validation.New()
	engine := route.NewEngine(hub)
	router := api.NewRouter(validator, client, client, engine)

	// Write timeout covers a worst-case cold quote: two uncached geocodes
	// with rate-limit waits in between.
	log.Printf("Server listening addr=:%s hub_lat=%v hub_lon=%v", port, hub.Lat, hub.Lon)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// newStore selects the cache backend: the Redis cache service when
// configured and reachable, otherwise the in-process fallback store.
func newStore() cache.Store {
	addr := config.Get("REDIS_ADDR", "")
	if addr == "" {
		log.Println("REDIS_ADDR not set, using in-memory geocode cache")
		return cache.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Get("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable addr=%s err=%v, falling back to in-memory cache", addr, err)
		return cache.NewMemoryStore()
	}

	log.Printf("geocode cache backend=redis addr=%s", addr)
	return cache.NewRedisStore(client)
}
