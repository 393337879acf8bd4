package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"crm-backend/internal/config"
	"crm-backend/internal/db"
	"crm-backend/internal/httpserver"
	contactrepo "crm-backend/internal/repository/contact"
	customerrepo "crm-backend/internal/repository/customer"
	leadrepo "crm-backend/internal/repository/lead"
	stagerepo "crm-backend/internal/repository/stage"
	userrepo "crm-backend/internal/repository/user"
	authsvc "crm-backend/internal/service/auth"
	contactsvc "crm-backend/internal/service/contact"
	customersvc "crm-backend/internal/service/customer"
	leadsvc "crm-backend/internal/service/lead"
	stagesvc "crm-backend/internal/service/stage"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	contactRepo := contactrepo.NewPostgres(dbpool, logger)
	leadRepo := leadrepo.NewPostgres(dbpool, logger)
	stageRepo := stagerepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)

	customerService := customersvc.New(customerRepo)
	contactService := contactsvc.New(contactRepo, customerRepo)
	leadService := leadsvc.New(leadRepo, customerRepo)
	stageService := stagesvc.New(stageRepo, leadRepo)
	authService := authsvc.New(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CustomerSvc: customerService,
		ContactSvc:  contactService,
		LeadSvc:     leadService,
		StageSvc:    stageService,
		AuthSvc:     authService,
	}, cfg.StaticDir)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
