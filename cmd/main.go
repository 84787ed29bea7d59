package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	grpcctx "github.com/dtroode/authkeeper/internal/api/grpc/context"
	grpchandler "github.com/dtroode/authkeeper/internal/api/grpc/handler"
	grpcrouter "github.com/dtroode/authkeeper/internal/api/grpc/router"
	grpcserver "github.com/dtroode/authkeeper/internal/api/grpc/server"
	httpctx "github.com/dtroode/authkeeper/internal/api/http/context"
	httprouter "github.com/dtroode/authkeeper/internal/api/http/router"
	"github.com/dtroode/authkeeper/internal/config"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/password"
	"github.com/dtroode/authkeeper/internal/repository/postgres"
	"github.com/dtroode/authkeeper/internal/server"
	"github.com/dtroode/authkeeper/internal/service"
	"github.com/dtroode/authkeeper/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.AdminPassword == config.DefaultAdminPassword {
		logger.Warn("ADMIN_PASSWORD is not set, using the default elevation secret")
	}

	hasher, err := password.NewBcrypt(cfg.Bcrypt.Cost, cfg.Bcrypt.Workers)
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}
	logger.Info("password hasher ready", "cost", hasher.Cost())
	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TTL())
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, postgres.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	transactor := postgres.NewTransactor(db)
	accountService := service.NewAccount(transactor, hasher, tokenManager, cfg.AdminPassword, logger)

	httpRouter := httprouter.New(accountService, tokenManager, db, httpctx.NewManager(), httprouter.Options{
		RequestTimeout: cfg.HTTP.RequestTimeout,
		SecureCookie:   cfg.HTTP.SecureCookie,
		HTTPS:          cfg.HTTP.EnableHTTPS,
	}, logger)
	httpServer := server.NewHTTPServer(httpRouter.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	health := grpchandler.NewHealth(db, grpchandler.DefaultCheckInterval, logger)
	grpcRouter := grpcrouter.New(health, tokenManager, grpcctx.NewManager(), logger)
	opsServer := grpcserver.NewGRPCServer(grpcRouter.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	logAppVersion()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		health.Run(gctx)
		return nil
	})
	for _, s := range []model.Server{httpServer, opsServer} {
		g.Go(func() error {
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				return fmt.Errorf("server %s: %w", s.Address(), err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("received interruption signal, shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		for _, s := range []model.Server{httpServer, opsServer} {
			if err := s.Stop(shutdownCtx); err != nil {
				logger.Error("error during server shutdown", "error", err, "address", s.Address())
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
	}
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
