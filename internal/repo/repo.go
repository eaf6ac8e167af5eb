package repo

import (
	"context"

	"github.com/Egor213/LogiStat/internal/domain"
	"github.com/Egor213/LogiStat/internal/repo/pgdb"
	"github.com/Egor213/LogiStat/internal/repo/repotypes"
	"github.com/Egor213/LogiStat/pkg/postgres"
)

type Upload interface {
	SaveUpload(ctx context.Context, upload *domain.Upload) (int, error)
	SaveUserCounts(ctx context.Context, uploadID int, users map[string]int) error
	GetUploads(ctx context.Context, filter repotypes.UploadFilter) ([]domain.Upload, error)
}

type Repositories struct {
	Upload
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Upload: pgdb.NewUploadRepo(pg),
	}
}
