package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/IliyaMhz/PersonalBlog/api"
	"github.com/IliyaMhz/PersonalBlog/config"
	"github.com/IliyaMhz/PersonalBlog/database"
	"github.com/IliyaMhz/PersonalBlog/models"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	cfg := config.New()
	setupLogger(cfg)

	if envErr != nil {
		log.Warn().Err(envErr).Msg("No .env file loaded")
	}
	log.Info().Msg("Initializing app...")

	dbType := config.GetString(cfg, "DB_TYPE", database.DBTypePostgres)
	log.Info().Str("dbType", dbType).Msg("Selecting database")

	var currentDB database.Database
	switch dbType {
	case database.DBTypeMemory:
		log.Warn().Msg("Using in-memory store; data is lost on restart")
		currentDB = database.NewInMemory()
	default:
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to database")
		}

		// If generating models, run generation and exit
		if config.GetBool(cfg, "GENERATE_MODELS", false) {
			log.Info().Msg("Generating models and query helpers...")
			if err := models.GenerateModels(db); err != nil {
				log.Fatal().Err(err).Msg("Model generation failed")
			}
			return
		}

		// If generating column mismatch report, run report and exit
		if config.GetBool(cfg, "GENERATE_COLUMN_REPORT", false) {
			log.Info().Msg("Generating column mismatch report...")
			if _, err := models.GenerateColumnMismatchReport(db); err != nil {
				log.Fatal().Err(err).Msg("Column report failed")
			}
			return
		}

		if config.GetBool(cfg, "AUTO_MIGRATE", true) {
			if err := database.Migrate(db); err != nil {
				log.Fatal().Err(err).Msg("Error migrating database")
			}
		}

		currentDB = database.New(db)
	}

	// Buffered so the server and signal goroutines never block after main stops reading.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(currentDB, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(time.Duration(config.GetInt(cfg, "SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second)
}

// setupLogger configures the global logger from LOG_LEVEL and LOG_FORMAT.
func setupLogger(cfg map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(cfg, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(config.GetString(cfg, "LOG_FORMAT", "json"), "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
