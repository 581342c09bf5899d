package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/contrib-role-api/internal/auth"
	"github.com/gdg-garage/contrib-role-api/internal/config"
	"github.com/gdg-garage/contrib-role-api/internal/database"
	"github.com/gdg-garage/contrib-role-api/internal/discord"
	"github.com/gdg-garage/contrib-role-api/internal/github"
	"github.com/gdg-garage/contrib-role-api/internal/handlers"
	"github.com/gdg-garage/contrib-role-api/internal/models"
	"github.com/gdg-garage/contrib-role-api/internal/notifier"
	"github.com/gdg-garage/contrib-role-api/internal/registry"
	"github.com/gdg-garage/contrib-role-api/internal/verification"
	"github.com/go-chi/chi/v5"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load Configuration
	cfg := config.LoadConfig()
	repos := cfg.Repos()
	log.Printf("Checking repositories: %s", strings.Join(models.RepositoryNames(repos), ", "))

	// Registry
	var reg registry.Registry
	if cfg.DatabasePath != "" {
		reg = registry.NewGormRegistry(database.Connect(cfg.DatabasePath))
		log.Printf("Storing verifications in %s", cfg.DatabasePath)
	} else {
		reg = registry.NewMemoryRegistry()
		log.Printf("DATABASE_PATH not set, verifications are kept in memory only")
	}

	connector := discord.NewRoleConnector(cfg.DiscordClientID)

	// Bot session for metadata registration and notifications
	var n notifier.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord bot session not initialized: %v", err)
		} else {
			if err := connector.RegisterMetadata(ctx, session, repos); err != nil {
				log.Printf("Failed to register linked role metadata: %v", err)
			} else {
				log.Printf("Linked role metadata registered successfully")
			}
			if cfg.DiscordNotificationsChannelID != "" {
				n = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
			}
		}
	} else {
		log.Printf("DISCORD_BOT_TOKEN not set, skipping linked role metadata registration")
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg)
	checker := github.NewChecker(cfg.GitHubToken)
	service := verification.NewService(checker, connector, authHandler, reg, n, repos)

	scheduler := verification.NewScheduler(service, reg, cfg.RecheckInterval, cfg.StaleAfter, cfg.RecheckDelay)
	go scheduler.Run(ctx)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r,
		authHandler.HandleLogin,
		handlers.NewLinkedRoleHandler(authHandler, service),
		handlers.NewHomeHandler(repos),
		handlers.NewStatusHandler(reg, repos, scheduler),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
