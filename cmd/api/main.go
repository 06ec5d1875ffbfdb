// Package main is the entry point for the bot annotation API server. The
// server handles accounts, dataset uploads, sentence annotation and training
// of simple retrieval bots.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/server"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// Version information is set during build time through linker flags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// configuration may come from the environment alone
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found or couldn't be loaded")
	}
}

func main() {
	var (
		configPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Bot Annotator API Server\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Str("database", cfg.Database.Driver).
		Msg("Starting Bot Annotator API Server")

	utils.InitValidator()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// blocks until SIGINT/SIGTERM
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
