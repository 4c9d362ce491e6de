package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/alpixn/site/pkg/internal"
	"github.com/alpixn/site/pkg/internal/cache"
	"github.com/alpixn/site/pkg/internal/config"
	"github.com/alpixn/site/pkg/internal/database"
	"github.com/alpixn/site/pkg/internal/grpc"
	"github.com/alpixn/site/pkg/internal/http"
	"github.com/alpixn/site/pkg/internal/http/api"
	"github.com/alpixn/site/pkg/internal/services"
	"github.com/alpixn/site/pkg/internal/storage"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("    _    _       _\n   / \\  | |_ __ (_)_  ___ __\n  / _ \\ | | '_ \\| \\ \\/ / '_ \\\n / ___ \\| | |_) | |>  <| | | |\n/_/   \\_\\_| .__/|_/_/\\_\\_| |_|\n          |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Alpixn.Site"), pkg.AppVersion)
	fmt.Printf("The content backend of the Alpixn website\n")
	color.HiBlack("=====================================================\n")

	// Load settings
	settings, err := config.Load(".", "..")
	if err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	db, err := database.NewGorm(settings.Database, settings.Debug.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Prepare storage and cache
	provider, err := storage.NewProvider(context.Background(), settings.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when preparing file storage.")
	}
	store, err := cache.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when preparing cache.")
	}
	defer store.Close()

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	if _, err := quartz.AddFunc(settings.Cleanup.Schedule, func() {
		if _, err := services.DoAutoUploadCleanup(context.Background(), db, provider, settings.Cleanup.Grace); err != nil {
			log.Error().Err(err).Msg("An error occurred when cleaning up uploads...")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when scheduling upload cleanup.")
	}
	quartz.Start()

	// Server
	server := http.NewServer(settings, &api.API{
		DB:      db,
		Storage: provider,
		Cache:   store,
		Upload: storage.UploadOptions{
			MaxSize:  settings.Upload.MaxSize,
			MaxWidth: settings.Upload.MaxWidth,
			Quality:  settings.Upload.Quality,
		},
	})
	go server.Listen()

	grpcServer := grpc.NewGrpc(settings.GrpcBind, db)
	go func() {
		if err := grpcServer.Listen(); err != nil {
			log.Error().Err(err).Msg("An error occurred when running gRPC server...")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	quartz.Stop()
	grpcServer.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down server...")
	}
}
