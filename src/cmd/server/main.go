package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/controller"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/router"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/notification"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/repository/implementations"
	"github.com/api-sage/account-ledger-service/src/internal/config"
	"github.com/api-sage/account-ledger-service/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := implementations.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	log.Println("initial migrations completed successfully")

	db, err := implementations.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	publisher := notification.NewKafkaPublisher(cfg.KafkaAddr, cfg.AccountTopic, cfg.TransactionTopic)
	defer func() { _ = publisher.Close() }()

	dispatcher := notification.NewDispatcher(publisher, notification.WithQueueSize(cfg.NotificationQueueSize))
	dispatcher.Start()
	defer dispatcher.Close()

	accountRepo := implementations.NewAccountRepository(db)
	ledgerRepo := implementations.NewLedgerRepository(db)
	transactionRepo := implementations.NewTransactionRepository(db)

	accountService := services.NewAccountService(accountRepo, dispatcher, cfg.AccountTopic)
	ledgerService := services.NewLedgerService(ledgerRepo, transactionRepo, dispatcher, cfg.TransactionTopic)

	mux := router.New(
		controller.NewAccountController(accountService),
		controller.NewTransactionController(ledgerService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("http server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}

	log.Println("server stopped")
}
