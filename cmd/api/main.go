package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"minibank/internal/config"
	"minibank/internal/handlers"
	"minibank/internal/registry"
	"minibank/internal/store"
	"minibank/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}

	if err := store.Migrate(pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	reg := registry.New(store.NewPostgresStore(pool))
	if err := reg.LoadAll(context.Background()); err != nil {
		log.Fatalf("Loading accounts failed: %v", err)
	}

	handler := handlers.New(reg)
	server := &fasthttp.Server{
		Handler: handler.Handle,
		Name:    "minibank",
	}

	go func() {
		utils.LogInfo("Server", "Listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChannel

	log.Println("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}
