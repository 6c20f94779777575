package main

import (
	"log"
	"time"

	"backend/internal/api"
	"backend/internal/engine"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.Gzip())

	store := engine.NewStore(cfg.DataDir)
	h := api.NewHandler(store)
	h.RegisterRoutes(e)

	// Warm the dataset cache in the background so the server binds
	// immediately. If this fails (or is disabled), the first request
	// triggers the load instead.
	if cfg.WarmOnBoot {
		go func() {
			log.Println("BACKGROUND: warming dataset cache...")
			t0 := time.Now()
			if _, _, err := store.Snapshot(); err != nil {
				log.Printf("BACKGROUND: warm-up failed: %v (will retry on first request)", err)
				return
			}
			log.Printf("BACKGROUND: datasets parsed in %v", time.Since(t0))
		}()
	}

	log.Printf("Server ready on %s (data dir: %s)", cfg.Address, cfg.DataDir)
	e.Logger.Fatal(e.Start(cfg.Address))
}
