package service

import (
	"context"
	"time"

	"github.com/Egor213/LogiStat/internal/broker"
	"github.com/Egor213/LogiStat/internal/domain"
	"github.com/Egor213/LogiStat/internal/metrics"
	"github.com/Egor213/LogiStat/internal/repo"
	"github.com/Egor213/LogiStat/internal/repo/repotypes"
	"github.com/Egor213/LogiStat/internal/storage"
)

type Stats interface {
	Parse(text string) *domain.Stats
	ProcessUpload(ctx context.Context, in domain.UploadInput) (domain.UploadResult, error)
	ReadURL(ctx context.Context, filename string) (string, error)
	ListUploads(ctx context.Context, filter repotypes.UploadFilter) ([]domain.Upload, error)
}

// TxManager runs fn inside one database transaction.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type StatsOptions struct {
	ResultsDir string
	KeyPrefix  string
	PresignTTL time.Duration
}

type Services struct {
	Stats
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	TxManager      TxManager
	Storage        storage.ObjectStorage
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
	Options        StatsOptions
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Stats: NewStatsService(
			deps.Repos.Upload,
			deps.TxManager,
			deps.Storage,
			deps.Counters,
			deps.BrokerProducer,
			deps.Options,
		),
	}
}
