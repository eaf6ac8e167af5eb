package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogiStat/internal/broker"
	kafkabroker "github.com/Egor213/LogiStat/internal/broker/kafka"
	"github.com/Egor213/LogiStat/internal/config"
	grpcv1 "github.com/Egor213/LogiStat/internal/controller/grpc/v1"
	httpv1 "github.com/Egor213/LogiStat/internal/controller/http/v1"
	"github.com/Egor213/LogiStat/internal/controller/validators"
	"github.com/Egor213/LogiStat/internal/metrics"
	"github.com/Egor213/LogiStat/internal/repo"
	"github.com/Egor213/LogiStat/internal/service"
	"github.com/Egor213/LogiStat/internal/storage"
	localstorage "github.com/Egor213/LogiStat/internal/storage/local"
	s3storage "github.com/Egor213/LogiStat/internal/storage/s3"
	"github.com/Egor213/LogiStat/internal/watcher"
	errorsUtils "github.com/Egor213/LogiStat/pkg/errors"
	"github.com/Egor213/LogiStat/pkg/grpcserver"
	"github.com/Egor213/LogiStat/pkg/httpserver"
	"github.com/Egor213/LogiStat/pkg/logger"
	"github.com/Egor213/LogiStat/pkg/postgres"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

func Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Config
	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level)
	log.Info("Logger has been set up")

	// Migrations
	Migrate(cfg.PG.URL)

	// DB connecting
	log.Info("Connecting to DB")
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.MaxPoolSize))
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer pg.Close()
	log.Info("Connected to DB")

	// Repos
	repositories := repo.NewRepositories(pg)

	// Object storage
	objectStorage, artifacts, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	log.WithField("driver", cfg.Storage.Driver).Info("Object storage is ready")

	// Broker
	var producer broker.Producer
	if cfg.Kafka.Enabled {
		kp := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer kp.Close()
		producer = kp
		log.WithField("topic", cfg.Kafka.Topic).Info("Kafka producer is ready")
	}

	// Services
	counters := metrics.New()
	deps := service.ServicesDependencies{
		Repos:          repositories,
		TxManager:      pg.TrManager,
		Storage:        objectStorage,
		Counters:       counters,
		BrokerProducer: producer,
		Options: service.StatsOptions{
			ResultsDir: cfg.Upload.ResultsDir,
			KeyPrefix:  cfg.Storage.KeyPrefix,
			PresignTTL: cfg.Storage.PresignTTL,
		},
	}
	services := service.NewServices(deps)

	uploadRules := validators.UploadRules{
		MaxSize:           cfg.Upload.MaxSize,
		AllowedExtensions: cfg.Upload.AllowedExtensions,
	}

	// HTTP server
	log.Infof("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	metrics.InstrumentAPI(apiHandler)
	routerCfg := httpv1.RouterConfig{
		Upload:      uploadRules,
		StagingDir:  cfg.Upload.StagingDir,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}
	if artifacts != nil {
		routerCfg.Artifacts = artifacts
	}
	httpv1.ConfigureRouter(apiHandler, services, routerCfg)
	apiServer := httpserver.New(apiHandler, httpserver.Port(cfg.HTTP.Port))

	// gRPC Server
	log.Infof("Starting gRPC server...")
	log.Debugf("Server port: %s", cfg.GRPC.Port)
	registerFun := grpcv1.RegisterServices(services, counters)
	grpcServer, err := grpcserver.New(registerFun, grpcserver.WithPort(cfg.GRPC.Port))
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	// Inbox watcher
	watcherDone := make(chan error, 1)
	if cfg.Watcher.Enabled {
		w, err := watcher.New(cfg.Watcher.Dir, cfg.Watcher.Settle, uploadRules, services.Stats)
		if err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}
		go func() {
			watcherDone <- w.Run(ctx)
		}()
	}

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err := <-apiServer.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	case err := <-grpcServer.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	case err := <-watcherDone:
		log.Info(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	cancel()
	if err := apiServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	grpcServer.Shutdown()
}

// newStorage returns the artifact server too when artifacts live on local disk.
func newStorage(ctx context.Context, cfg config.Storage) (storage.ObjectStorage, *localstorage.Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal:
		st, err := localstorage.New(cfg.LocalRoot, cfg.PublicURL, cfg.SigningKey)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil
	default:
		st, err := s3storage.New(ctx, s3storage.Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	}
}
