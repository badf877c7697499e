package repository

import (
	"context"
)

// Filter is an equality filter over column values.
type Filter map[string]interface{}

// Row is a stored row keyed by column name.
type Row map[string]interface{}

// SelectOptions controls ordering and paging of Select results.
type SelectOptions struct {
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// RecordStore is generic, equality-filtered CRUD over named tables. It is
// the surface the change reverter mutates through; row-level authorization
// is enforced by the database itself, callers only perform coarse role
// checks. Update and Delete report the number of affected rows so callers
// can distinguish a missing target from a successful mutation.
type RecordStore interface {
	Select(ctx context.Context, table string, filter Filter, opts SelectOptions) ([]Row, error)
	SelectOne(ctx context.Context, table string, filter Filter) (Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, patch Row, filter Filter) (int64, error)
	Delete(ctx context.Context, table string, filter Filter) (int64, error)
}
