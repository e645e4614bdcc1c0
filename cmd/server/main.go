package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"facemark/identity/internal/config"
	"facemark/identity/internal/crypto"
	"facemark/identity/internal/db"
	internalhttp "facemark/identity/internal/http"
	"facemark/identity/internal/identity"
	"facemark/identity/internal/logging"
	"facemark/identity/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	hasher, err := crypto.NewHasher(cfg.BcryptCost)
	if err != nil {
		log.Error("invalid bcrypt cost", "error", err)
		os.Exit(1)
	}

	store := repository.NewStore(pool, cfg.StoreTimeout)
	svc := identity.NewService(store, hasher, identity.TokenConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})
	server := internalhttp.NewServer(cfg, svc, log)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("identity service listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
