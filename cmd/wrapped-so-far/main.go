// Command wrapped-so-far runs the listening personality API server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/acrane/wrapped-so-far/internal/db"
	"github.com/acrane/wrapped-so-far/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Validate environment variables
	clientID := os.Getenv("SPOTIFY_ID")
	clientSecret := os.Getenv("SPOTIFY_SECRET")

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("please set SPOTIFY_ID and SPOTIFY_SECRET environment variables")
	}

	// The database is optional. Without it, sessions live in memory and
	// personality snapshots are not persisted.
	var database *db.DB
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		var err error
		database, err = db.New(context.Background(), databaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
	} else {
		log.Println("DATABASE_URL not set, running without persistence")
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:         os.Getenv("WRAPPED_ADDR"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  os.Getenv("WRAPPED_REDIRECT_URL"),
		Database:     database,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
