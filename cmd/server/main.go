package main

import (
	"log"
	"net/http"

	_ "blogsite/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"blogsite/internal/cache"
	"blogsite/internal/config"
	"blogsite/internal/db"
	"blogsite/internal/handler"
	"blogsite/internal/repository"
	"blogsite/internal/router"
	"blogsite/internal/service"
	"blogsite/internal/session"
)

// @title BlogSite API
// @version 1.0
// @description Session-authenticated blogging site. Form routes respond with redirects; the two listing routes return JSON errors on failure.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()

	mongoDB, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer func() {
		if err := db.Close(mongoDB); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(mongoDB)

	// Initialize session store
	sessions := session.NewRedisStore(cacheClient, cfg.SessionTTL)

	// Initialize services
	accountService := service.NewAccountService(userRepo)
	blogService := service.NewBlogService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountService, sessions, cfg.StaticDir, cfg.SessionTTL)
	blogHandler := handler.NewBlogHandler(blogService, cfg.StaticDir)

	// Register routes
	if err := router.Register(e, cfg, sessions, authHandler, blogHandler); err != nil {
		log.Fatalf("router init: %v", err)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
