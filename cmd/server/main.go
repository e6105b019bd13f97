package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus_connect/internal/api"
	"campus_connect/internal/api/middleware"
	"campus_connect/internal/app/service"
	"campus_connect/internal/common/security"
	"campus_connect/internal/domain/repository"
	"campus_connect/internal/domain/roles"
	"campus_connect/internal/moderation"
	"campus_connect/internal/platform/cache"
	"campus_connect/internal/platform/config"
	"campus_connect/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Institutional policy + moderation setup
	emailRule := roles.EmailRule{
		Domain:       config.AppConfig.EmailDomain,
		ProgramYears: config.AppConfig.ProgramYears,
	}

	categories := moderation.DefaultCategories()
	if path := config.AppConfig.ModerationKeywordsFile; path != "" {
		loaded, err := moderation.LoadCategoriesFile(path)
		if err != nil {
			log.Fatalf("Could not load moderation keywords: %v", err)
		}
		categories = loaded
	}
	validator := moderation.NewKeywordValidator(categories)

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	postRepo := repository.NewPgPostRepository(database.DB)
	appRepo := repository.NewPgJobApplicationRepository(database.DB)

	// 7. Initialize Services
	feedCache := cache.NewJSONCache(cache.RDB, config.AppConfig.FeedCacheTTL)
	alumniCache := cache.NewJSONCache(cache.RDB, config.AppConfig.AlumniCacheTTL)

	authService := service.NewAuthService(userRepo, emailRule, config.AppConfig.AdminEmail)
	userService := service.NewUserService(userRepo, alumniCache)
	postService := service.NewPostService(postRepo, appRepo, validator, emailRule, feedCache)

	// 8. Seed the admin account
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(seedCtx, config.AppConfig.AdminName, config.AppConfig.AdminSeedPwd); err != nil {
		log.Fatalf("Admin seed failed: %v", err)
	}
	seedCancel()

	// 9. Initialize Router & HTTP Server
	auth := middleware.NewAuth(userRepo, emailRule)
	router := api.NewRouter(auth, authService, userService, postService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
