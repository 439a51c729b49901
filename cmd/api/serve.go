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

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/suar-net/suar-rest/internal/database"
	"github.com/suar-net/suar-rest/internal/handler"
	"github.com/suar-net/suar-rest/internal/repository"
	"github.com/suar-net/suar-rest/internal/service"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}
	defer db.Close()
	logger.Info("successfully connected to database", "driver", cfg.DB.Driver)

	if err := database.RunMigrations(db, cfg.DB.Driver); err != nil {
		logger.Error("failed to run migrations", "error", err)
		return err
	}

	repo := repository.NewRepository(db, cfg.DB.Driver)
	recorder := service.NewHistoryRecorder(repo.Request(), logger)
	dispatcher := service.NewHTTPDispatcher(service.WithPrivateNetworkGuard(cfg.Outbound.BlockPrivateNetworks))
	services := handler.Services{
		Request: service.NewRequestService(dispatcher, recorder, service.RequestServiceOptions{
			DefaultTimeout:       cfg.Outbound.DefaultTimeout,
			BlockPrivateNetworks: cfg.Outbound.BlockPrivateNetworks,
		}, logger),
		History: service.NewHistoryService(repo.Request()),
	}
	router := handler.SetupRouter(services, db, cfg.Server, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot run server on port %s: %w", cfg.Server.Port, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down the server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info("server successfully shut down")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		return err
	}
	return nil
}
