package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"malaria-intake/internal/assistant"
	"malaria-intake/internal/config"
	"malaria-intake/internal/handlers"
	"malaria-intake/internal/notify"
	"malaria-intake/internal/routes"
	"malaria-intake/internal/store"
	"malaria-intake/pkg/logger"
	"malaria-intake/pkg/utils"
)

func main() {
	// 1. Env
	envErr := godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	if envErr != nil {
		logger.Log.Warn(".env file not found")
	}
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 2. Firebase (sem credenciais o processo não sobe)
	var fbApp *firebase.App
	if cfg.NeedsFirebase() {
		app, err := config.NewFirebaseApp(ctx, cfg)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize firebase")
		}
		fbApp = app
		logger.Log.Info("Firebase Admin SDK initialized")
	}

	// 3. Store
	subStore, closeStore, err := store.Open(ctx, cfg, fbApp)
	if err != nil {
		logger.WithError(err).Fatal("failed to open submission store")
	}
	defer closeStore()

	// 4. Notificações e Gemini (opcionais)
	notifier, closeNotifier := buildNotifier(ctx, cfg, fbApp)
	defer closeNotifier()

	var generator assistant.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := assistant.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize gemini client")
		}
		defer gemini.Close()
		generator = gemini
	}

	// 5. Router
	formHandler := handlers.NewFormHandler(subStore, utils.HexUUIDGenerator{}, notifier)
	r, err := routes.NewRouter(cfg, routes.Handlers{
		Form:   formHandler,
		Admin:  handlers.NewAdminHandler(subStore, cfg.JWTSecret, cfg.JWTTTL, cfg.AdminEmail, cfg.AdminPasswordHash),
		Gemini: handlers.NewGeminiHandler(generator),
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to build router")
	}

	// 6. Run
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(map[string]interface{}{
			"port":       cfg.Port,
			"collection": subStore.CollectionPath(),
			"driver":     cfg.StoreDriver,
		}).Info("server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}

	// Notificações pendentes terminam antes do closeNotifier (defer)
	formHandler.Wait()
}

// buildNotifier liga FCM e/ou Kafka conforme a config; sem nenhum, devolve nil
func buildNotifier(ctx context.Context, cfg *config.Config, app *firebase.App) (notify.Notifier, func()) {
	var notifiers notify.Multi
	closers := []func(){}

	if cfg.FCMTopic != "" && app != nil {
		client, err := app.Messaging(ctx)
		if err != nil {
			logger.WithError(err).Fatal("failed to get messaging client")
		}
		notifiers = append(notifiers, notify.NewFCMNotifier(client, cfg.FCMTopic))
		logger.WithField("topic", cfg.FCMTopic).Info("FCM notifications enabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		kn := notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.CollectionPath())
		notifiers = append(notifiers, kn)
		closers = append(closers, func() {
			if err := kn.Close(); err != nil {
				logger.WithError(err).Warn("failed to close kafka writer")
			}
		})
		logger.WithField("topic", cfg.KafkaTopic).Info("Kafka events enabled")
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if len(notifiers) == 0 {
		return nil, closeAll
	}
	return notifiers, closeAll
}
