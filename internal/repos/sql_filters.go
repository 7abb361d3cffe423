package repos

import (
	"gorm.io/gorm"
)

type Filter interface {
	Apply(query *gorm.DB) *gorm.DB
}

type WhereFilter struct {
	SQL  string
	Args []any
}

func (f WhereFilter) Apply(query *gorm.DB) *gorm.DB {
	return query.Where(f.SQL, f.Args...)
}

func FilterByPool(pool string) WhereFilter {
	return WhereFilter{
		SQL:  "pool = ?",
		Args: []any{pool},
	}
}

func FilterByNode(node string) WhereFilter {
	return WhereFilter{
		SQL:  "node = ?",
		Args: []any{node},
	}
}

func FilterByMode(mode string) WhereFilter {
	return WhereFilter{
		SQL:  "mode = ?",
		Args: []any{mode},
	}
}

func FilterFailed(failed bool) WhereFilter {
	return WhereFilter{
		SQL:  "is_failed = ?",
		Args: []any{failed},
	}
}

func RawFilter(sql string) WhereFilter {
	return WhereFilter{
		SQL: sql,
	}
}
