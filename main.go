package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	geminiclient "linkedpost/infrastructure/clients/gemini"
	linkedinclient "linkedpost/infrastructure/clients/linkedin"
	transcriptclient "linkedpost/infrastructure/clients/transcript"
	youtubeclient "linkedpost/infrastructure/clients/youtube"
	"linkedpost/infrastructure/configuration"
	"linkedpost/infrastructure/logger"
	"linkedpost/infrastructure/session"
	httpHandler "linkedpost/interfaces/http"
	"linkedpost/server"
	"linkedpost/usecase"

	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// Load env from files (non-destructive; OS env still has precedence),
	// then re-resolve config so file-provided keys are picked up.
	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.LoadConfig()

	if err := configuration.C.Validate(); err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Configuration incomplete; refusing to start")
	}

	youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, configuration.C.YouTube.APIKey)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Failed to initialize YouTube client")
	}
	transcriptClient := transcriptclient.NewTranscriptClient(
		configuration.C.Transcript.BaseURL,
		configuration.C.Transcript.APIKey,
	)
	geminiClient := geminiclient.NewGeminiClient(configuration.C.Gemini)
	linkedInClient := linkedinclient.NewLinkedInClient("")

	postUsecase := usecase.NewPostUsecase(youtubeClient, transcriptClient, geminiClient, linkedInClient)
	authUsecase := usecase.NewAuthUsecase(configuration.C.LinkedIn, linkedInClient)

	sessionStore := session.NewStore()
	postHandler := httpHandler.NewPostHandler(postUsecase)
	authHandler := httpHandler.NewLinkedInAuthHandler(authUsecase, configuration.C.App.FrontendURL)

	router := server.InitiateRouter(postHandler, authHandler, sessionStore, configuration.C.App.CORSOrigins)

	port := configuration.C.App.Port
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.GetLogger().WithField("port", port).Info("Starting application")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-interrupt:
			logger.GetLogger().Info("Application shutdown requested")
		case <-ctx.Done():
		}
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
