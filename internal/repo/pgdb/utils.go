package pgdb

import (
	"time"

	"github.com/Egor213/LogiStat/internal/repo/repotypes"
	sq "github.com/Masterminds/squirrel"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

func BuildUploadQueryFilters(filter repotypes.UploadFilter) ([]sq.Sqlizer, uint64) {
	conds := []sq.Sqlizer{}

	if filter.Filename != "" {
		conds = append(conds, sq.Eq{"filename": filter.Filename})
	}
	if isSet(filter.From) {
		conds = append(conds, sq.GtOrEq{"created_at": filter.From})
	}
	if isSet(filter.To) {
		conds = append(conds, sq.LtOrEq{"created_at": filter.To})
	}

	limit := uint64(defaultLimit)
	if filter.Limit > 0 {
		limit = uint64(min(filter.Limit, maxLimit))
	}

	return conds, limit
}

func isSet(t time.Time) bool {
	return !t.IsZero() && !t.Equal(time.Unix(0, 0))
}
