// Package main запускает HTTP-сервер сервиса boostmarket.
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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/boostmarket/internal/chat"
	"github.com/mmeshcher/boostmarket/internal/config"
	"github.com/mmeshcher/boostmarket/internal/gateway"
	"github.com/mmeshcher/boostmarket/internal/handler"
	"github.com/mmeshcher/boostmarket/internal/messaging"
	"github.com/mmeshcher/boostmarket/internal/middleware"
	"github.com/mmeshcher/boostmarket/internal/proof"
	"github.com/mmeshcher/boostmarket/internal/repository"
	"github.com/mmeshcher/boostmarket/internal/service"
	"github.com/mmeshcher/boostmarket/internal/settlement"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}
	if cfg.JWTSecretGenerated {
		sugar.Warn("JWT_SECRET is empty, tokens are signed with a random per-process secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg.DatabaseURI, sugar)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}

	calc, err := settlement.NewCalculator(cfg.CommissionRate)
	if err != nil {
		sugar.Fatalw("settlement initialization error", "error", err.Error())
	}

	proofs, err := proof.NewStore(cfg.ProofDir, cfg.ProofMaxBytes)
	if err != nil {
		sugar.Fatalw("proof storage initialization error", "error", err.Error())
	}

	hub := chat.NewHub(logger)
	svc := service.NewService(repo, calc, hub, logger, cfg.MaxOrderPrice)
	defer svc.Close()

	var consumer *messaging.Consumer
	if cfg.RabbitURL != "" {
		consumer, err = messaging.NewConsumer(cfg.RabbitURL, cfg.PaymentsExchange, cfg.PaymentsQueue, logger)
		if err != nil {
			sugar.Fatalw("rabbitmq initialization error", "error", err.Error())
		}
		defer consumer.Close()
	}

	tokens := middleware.NewTokenManager(cfg.JWTSecret)
	h := handler.NewHandler(svc, logger, tokens, hub, proofs, cfg.PaymentWebhookSecret)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(ctx)
	})

	if cfg.PaymentGatewayAddress != "" {
		gw := gateway.NewClient(cfg.PaymentGatewayAddress)
		g.Go(func() error {
			sugar.Infow("starting payment reconciliation", "gateway", cfg.PaymentGatewayAddress, "interval", cfg.ReconcileInterval)
			return svc.RunReconciliation(ctx, gw, cfg.ReconcileInterval)
		})
	}

	if consumer != nil {
		payments := messaging.NewPaymentHandler(svc, logger)
		g.Go(func() error {
			return consumer.Run(ctx, payments.Handle)
		})
	}

	g.Go(func() error {
		sugar.Infow("starting boostmarket server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

func openRepository(ctx context.Context, dsn string, sugar *zap.SugaredLogger) (service.Repository, error) {
	if dsn == "" {
		sugar.Warn("DATABASE_URI is empty, using in-memory storage")
		return repository.NewMemoryRepository(), nil
	}
	repo, err := repository.NewPostgresRepository(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
