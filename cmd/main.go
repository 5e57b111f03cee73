package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/account-server/internal/api/http/handler"
	"github.com/dtroode/account-server/internal/api/http/middleware"
	"github.com/dtroode/account-server/internal/api/http/router"
	httpServer "github.com/dtroode/account-server/internal/api/http/server"
	"github.com/dtroode/account-server/internal/config"
	"github.com/dtroode/account-server/internal/hasher"
	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/notify"
	"github.com/dtroode/account-server/internal/repository/postgres"
	"github.com/dtroode/account-server/internal/server"
	"github.com/dtroode/account-server/internal/service"
	storage "github.com/dtroode/account-server/internal/storage/minio"
	"github.com/dtroode/account-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	passwordHasher := hasher.NewBcrypt(0)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	notifier, err := notify.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	if err != nil {
		logger.Fatal("failed to create mail notifier", "error", err)
	}

	accountService := service.NewAccount(userRepo, passwordHasher, tokenManager, storageClient, notifier, logger)
	recoveryService := service.NewRecovery(userRepo, passwordHasher, notifier, cfg.FrontendURL, logger)

	authHandler := handler.NewAuth(accountService, recoveryService, cfg.Session.CookieSecure, logger)
	accountHandler := handler.NewAccount(accountService, logger)
	authenticate := middleware.NewAuthenticate(tokenManager, userRepo, logger)
	logging := middleware.NewLogging(logger)

	engine := router.New(authHandler, accountHandler, authenticate, logging)

	var listener server.Listener
	if cfg.HTTP.EnableHTTPS {
		listener = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		listener = server.NewPlainListener()
	}

	srv := httpServer.New(fmt.Sprintf(":%s", cfg.HTTP.Port), engine, listener, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Run(); err != nil {
			logger.Error("failed to run server", "error", err)
			stop()
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
