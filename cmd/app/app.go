package app

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

	"github.com/yizeng/geoshapes/internal/api"
	"github.com/yizeng/geoshapes/internal/config"
	"github.com/yizeng/geoshapes/internal/logger"
	"github.com/yizeng/geoshapes/internal/repository"
	"github.com/yizeng/geoshapes/internal/repository/dao"
	"github.com/yizeng/geoshapes/internal/service"
	"github.com/yizeng/geoshapes/internal/session"
)

const (
	DefaultConfigPath = "./cmd/app/config.yml"
	shutdownTimeout   = 10 * time.Second
)

func ConfigPath() string {
	if p := os.Getenv("GEOSHAPES_CONFIG"); p != "" {
		return p
	}

	return DefaultConfigPath
}

func Start() error {
	loader := config.NewLoader(ConfigPath())
	conf, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment, conf.Log.Level); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	loader.Watch(func(updated *config.AppConfig, err error) {
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.Error(err))
			return
		}
		if err := logger.SetLevel(updated.Log.Level); err != nil {
			zap.L().Warn("ignoring invalid log level", zap.Error(err))
			return
		}
		zap.L().Info("config reloaded", zap.String("log_level", updated.Log.Level))
	})

	geoDAO, err := dao.NewGeoShapesDAO(conf.Chain.RPCURL, conf.Chain.ContractAddress, conf.Chain.ChainID, conf.Chain.PrivateKey)
	if err != nil {
		return fmt.Errorf("failed to initialize contract binding -> %w", err)
	}
	defer geoDAO.Close()

	ledgerRepo := repository.NewLedgerRepository(geoDAO, conf.Chain.ChainID)

	ctrl, err := session.New(ledgerRepo, session.Config{
		TokensPollInterval:   conf.Session.TokensPollInterval,
		SupplyPollInterval:   conf.Session.SupplyPollInterval,
		ConnectRetryInterval: conf.Session.ConnectRetryInterval,
		AutoConnect:          conf.Session.AutoConnect,
		Embedded:             conf.Session.Embedded,
		MintPrice:            conf.Chain.MintPrice,
		CurrencySymbol:       conf.Chain.CurrencySymbol,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session -> %w", err)
	}

	artSvc := service.NewArtworkService()
	ledgerSvc := service.NewLedgerService(ledgerRepo, artSvc)

	s := api.NewServer(conf, ctrl, ledgerSvc, artSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + conf.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ctrl.Run(gCtx)
	})
	g.Go(func() error {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe -> %w", err)
		}

		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		zap.L().Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to run the server -> %w", err)
	}

	return nil
}
