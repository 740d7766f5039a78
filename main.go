package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/debemdeboas/chronicler/internal/archive"
	"github.com/debemdeboas/chronicler/internal/cache"
	"github.com/debemdeboas/chronicler/internal/clipboard"
	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/handler"
	"github.com/debemdeboas/chronicler/internal/logger"
	"github.com/debemdeboas/chronicler/internal/render"
	"github.com/debemdeboas/chronicler/internal/repository/session"
	"github.com/debemdeboas/chronicler/internal/util"
	"github.com/debemdeboas/chronicler/internal/util/compression"
	"github.com/debemdeboas/chronicler/internal/wizard"
)

//go:embed static/* templates/*
var content embed.FS

func main() {
	envErr := godotenv.Load()

	configPath := os.Getenv(config.EnvConfigPath)
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}

	bootLogger := logger.New(os.Getenv(config.EnvLogLevel))
	config.SetLogger(logger.Component(bootLogger, "config"))
	if err := config.LoadConfig(configPath); err != nil {
		bootLogger.Fatal().Err(err).Str("path", configPath).Msg("Failed to load configuration")
	}

	log := logger.New(config.AppConfig.Logging.Level)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("No .env file loaded")
	}

	config.SetLogger(logger.Component(log, "config"))
	archive.SetLogger(logger.Component(log, "archive"))
	clipboard.SetLogger(logger.Component(log, "clipboard"))
	wizard.SetLogger(logger.Component(log, "wizard"))
	session.SetLogger(logger.Component(log, "session"))
	render.SetLogger(logger.Component(log, "render"))
	handler.SetLogger(logger.Component(log, "handler"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Static files are served with their content hash as ETag.
	static, _ := fs.Sub(content, config.StaticLocalDir)
	fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		cache.SetStaticHash(config.StaticUrlPath+path, util.ContentHash(data))
		return nil
	})

	picker := archive.SchemePicker{Local: archive.LocalPicker{}}
	if client, err := archive.NewS3Client(ctx, config.AppConfig.S3); err != nil {
		log.Warn().Err(err).Msg("S3 archives disabled")
	} else {
		picker.S3 = archive.S3Picker{Client: client}
	}

	var cb clipboard.Clipboard
	if term, err := clipboard.NewTerminal(os.Stdout); err != nil {
		log.Warn().Err(err).Msg("Clipboard unavailable, copy actions will fail")
		cb = clipboard.Unavailable{Err: err}
	} else {
		cb = term
	}

	compressor, err := compression.ByName(config.AppConfig.Archive.BundleCompression)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid bundle compression")
	}

	var library *archive.Library
	if dir := config.AppConfig.Archive.LibraryDir; dir != "" {
		library = archive.NewLibrary(dir)
		if err := library.Init(); err != nil {
			log.Error().Err(err).Str("dir", dir).Msg("Failed to scan archive library")
		}
		go library.Watch(ctx, config.AppConfig.ReloadInterval())
	}

	writer := archive.NewWriter()
	sessions := session.NewMemoryRepository(func() *wizard.Machine {
		return wizard.NewMachine(writer)
	})
	idle := config.AppConfig.SessionIdleTimeout()
	go sessions.Expire(ctx, idle, config.AppConfig.SessionSweepInterval())

	h := handler.New(handler.Options{
		FS:         content,
		Sessions:   sessions,
		Picker:     picker,
		Clipboard:  cb,
		Library:    library,
		Compressor: compressor,
	})

	mux := http.NewServeMux()
	mux.Handle(config.StaticUrlPath, http.StripPrefix(config.StaticUrlPath, http.FileServer(http.FS(static))))
	h.Register(mux)

	addr := config.AppConfig.Server.Host + ":" + config.AppConfig.Server.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           logger.Middleware(log)(handler.SecureHeaders(handler.CacheIt(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("addr", addr).
		Bool("library", library != nil).
		Dur("session_idle_timeout", idle).
		Msg("Chronicler listening")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}

	log.Info().Msg("Server stopped")
}
