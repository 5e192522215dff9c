package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/lecture_notes/internal/ai"
	"github.com/Vovarama1992/lecture_notes/internal/config"
	"github.com/Vovarama1992/lecture_notes/internal/delivery"
	"github.com/Vovarama1992/lecture_notes/internal/error_notificator"
	"github.com/Vovarama1992/lecture_notes/internal/notes"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	notifiers := []error_notificator.Notificator{error_notificator.NewLogInfra(zl)}
	if cfg.Telegram.Enabled() {
		tg, err := error_notificator.NewTelegramInfra(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
		if err != nil {
			log.Fatalf("failed to init telegram alerts: %v", err)
		}
		notifiers = append(notifiers, tg)
	}
	errService := error_notificator.NewService(notifiers...)

	// =========================================================================
	// CLIENTS (AI)
	// =========================================================================

	openAIClient := ai.NewOpenAIClient(ai.OpenAIConfig{
		APIKey:          cfg.OpenAI.APIKey,
		BaseURL:         cfg.OpenAI.BaseURL,
		TranscribeModel: cfg.OpenAI.TranscribeModel,
		NotesModel:      cfg.OpenAI.NotesModel,
	})

	var transcriber notes.Transcriber = openAIClient
	if cfg.STTProvider == "deepgram" {
		transcriber = ai.NewDeepgramClient(cfg.Deepgram.APIKey, cfg.Deepgram.BaseURL)
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	notesService := notes.NewService(
		transcriber,  // Whisper or Deepgram
		openAIClient, // chat model
		errService,
		zl,
		notes.Options{
			MaxSize:      cfg.MaxUploadBytes,
			StageTimeout: cfg.UpstreamTimeout,
		},
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	notesHandler := delivery.NewNotesHandler(notesService, zl)
	delivery.RegisterRoutes(r, notesHandler, cfg.ProcessRateLimit)

	// =========================================================================
	// START SERVER
	// =========================================================================

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + srv.Addr + " (stt=" + cfg.STTProvider + ")",
		Service: "lecture-notes",
	})

	select {
	case <-ctx.Done():
		zl.Log(logger.LogEntry{Level: "info", Message: "shutdown signal received", Service: "lecture-notes"})
	case err := <-errChan:
		log.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
