package main // Entry point package

import (
	"log" // Logging library

	"github.com/iliyamo/cinema-booking-client/internal/config"  // Internal config loader
	"github.com/iliyamo/cinema-booking-client/internal/stubapi" // Stub catalog API
	"github.com/labstack/echo/v4"                               // Echo web framework
)

func main() {
	cfg := config.Load()                                // Load environment config
	e := echo.New()                                     // Create Echo instance
	srv := stubapi.New(cfg.JWTSecret, cfg.AccessTTLMin) // Build the stub with sample data
	stubapi.RegisterRoutes(e, srv)                      // Register stub routes

	addr := ":" + cfg.StubPort                                     // Address string with port
	log.Printf("stub api listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
