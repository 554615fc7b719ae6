package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anicoll/taspromto/internal/pkg/config"
	"github.com/anicoll/taspromto/internal/pkg/metrics"
	"github.com/anicoll/taspromto/internal/pkg/mqtt"
	"github.com/anicoll/taspromto/internal/pkg/names"
	"github.com/anicoll/taspromto/internal/pkg/router"
	"github.com/anicoll/taspromto/internal/pkg/server"
)

func TaspromtoCommand(ctx *cli.Context) error {
	miTempNames, err := config.ParseNamePairs(ctx.String("mitemp-names"))
	if err != nil {
		return err
	}
	rfNames, err := config.ParseNamePairs(ctx.String("rf-names"))
	if err != nil {
		return err
	}

	cfg := &config.Config{
		MqttCfg: &config.MqttConfig{
			Host:     ctx.String("mqtt-host"),
			Port:     ctx.Int("mqtt-port"),
			Username: ctx.String("mqtt-user"),
			Password: ctx.String("mqtt-pass"),
		},
		ListenAddr:   fmt.Sprintf("0.0.0.0:%d", ctx.Int("listen-port")),
		MiTempNames:  miTempNames,
		RFNames:      rfNames,
		PollInterval: ctx.Duration("poll-interval"),
		LogLevel:     ctx.String("log-level"),
	}

	return run(ctx.Context, cfg, nil)
}

// run wires the pipeline and supervises it until the context is cancelled.
// A nil bus gets replaced by the real mqtt client; tests inject a mock.
func run(ctx context.Context, cfg *config.Config, bus BusService) error {
	var err error

	eg, ctx := errgroup.WithContext(ctx)
	logCfg := zap.NewProductionConfig()

	logCfg.Level, err = zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logCfg.OutputPaths = []string{"stdout"}
	logCfg.ErrorOutputPaths = []string{"stdout"}
	logCfg.Sampling = nil
	logger := zap.Must(logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)))
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	errorChan := make(chan error, 1000)

	if bus == nil {
		bus = mqtt.New(cfg.MqttCfg)
	}

	resolver := names.NewResolver(cfg.MiTempNames, cfg.RFNames)
	registry := metrics.NewRegistry()
	renderer := metrics.NewRenderer(registry)
	rtr := router.New(registry, resolver, bus)

	eg.Go(func() error {
		if err := bus.Connect(); err != nil {
			return err
		}
		for _, pattern := range mqtt.Subscriptions {
			if err := bus.Subscribe(pattern, rtr.Handle); err != nil {
				return err
			}
		}
		logger.Info("subscribed to bus", zap.Int("patterns", len(mqtt.Subscriptions)))
		<-ctx.Done()
		bus.Disconnect()
		return ctx.Err()
	})

	srv := &http.Server{
		Handler:      server.New(renderer, bus).Routes(),
		Addr:         cfg.ListenAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	eg.Go(func() error {
		return cronStatePoll(ctx, bus, cfg.PollInterval, errorChan)
	})

	eg.Go(func() error {
		// handle any async errors from the services; nothing the pipeline
		// produces is fatal, so they are only logged.
		for {
			select {
			case err := <-errorChan:
				logger.Error("async error", zap.Error(err))
			case <-ctx.Done():
				logger.Info("context done")
				return ctx.Err()
			}
		}
	})

	return eg.Wait()
}

// cronStatePoll periodically asks the tasmota group topic to republish
// state, so freshly started exporters fill up without waiting a full
// telemetry period.
func cronStatePoll(ctx context.Context, bus BusService, every time.Duration, errChan chan error) error {
	if every <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", every), func() {
		if err := bus.Publish("cmnd/tasmotas/STATE", ""); err != nil {
			zap.L().Error("failed to poll tasmota group state", zap.Error(err))
			errChan <- err
		}
	}); err != nil {
		return err
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}
