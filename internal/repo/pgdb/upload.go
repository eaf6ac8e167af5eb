package pgdb

import (
	"context"
	"maps"
	"slices"

	"github.com/Egor213/LogiStat/internal/domain"
	"github.com/Egor213/LogiStat/internal/repo/repoerrs"
	"github.com/Egor213/LogiStat/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/LogiStat/pkg/errors"
	"github.com/Egor213/LogiStat/pkg/postgres"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type UploadRepo struct {
	*postgres.Postgres
}

func NewUploadRepo(pg *postgres.Postgres) *UploadRepo {
	return &UploadRepo{pg}
}

func (r *UploadRepo) SaveUpload(ctx context.Context, u *domain.Upload) (int, error) {
	sql, args, err := r.Builder.
		Insert("uploads").
		Columns("filename", "object_key", "total_lines", "error_count", "warn_count", "debug_count", "info_count", "unique_users").
		Values(u.Filename, u.ObjectKey, u.TotalLines, u.ErrorCount, u.WarnCount, u.DebugCount, u.InfoCount, u.UniqueUsers).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	var id int
	err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return id, nil
}

// SaveUserCounts inserts users in name order so repeated saves produce the
// same statement.
func (r *UploadRepo) SaveUserCounts(ctx context.Context, uploadID int, users map[string]int) error {
	if len(users) == 0 {
		return nil
	}

	query := r.Builder.
		Insert("upload_users").
		Columns("upload_id", "username", "occurrences")

	for _, name := range slices.Sorted(maps.Keys(users)) {
		query = query.Values(uploadID, name, users[name])
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	if _, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...); err != nil {
		if errorsUtils.IsForeignKeyViolation(err) {
			return errorsUtils.WrapPathErr(repoerrs.ErrNotFound)
		}
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

func (r *UploadRepo) GetUploads(ctx context.Context, filter repotypes.UploadFilter) ([]domain.Upload, error) {
	conds, limit := BuildUploadQueryFilters(filter)

	query := r.Builder.
		Select("id", "filename", "object_key", "total_lines", "error_count", "warn_count", "debug_count", "info_count", "unique_users", "created_at").
		From("uploads").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit)

	if len(conds) > 0 {
		query = query.Where(sq.And(conds))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	uploads, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Upload])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return uploads, nil
}
