package repository

import (
	"context"
	"fmt"

	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormRecordStore implements equality-filtered CRUD over dynamic table
// names. Mutations report affected rows; callers decide whether zero rows
// is an error.
type gormRecordStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecordStore creates a gorm-backed record store
func NewRecordStore(db *gorm.DB, logger *zap.Logger) domainRepo.RecordStore {
	return &gormRecordStore{
		db:     db,
		logger: logger,
	}
}

func (s *gormRecordStore) Select(ctx context.Context, table string, filter domainRepo.Filter, opts domainRepo.SelectOptions) ([]domainRepo.Row, error) {
	q := s.db.WithContext(ctx).Table(table)
	if len(filter) > 0 {
		q = q.Where(map[string]interface{}(filter))
	}
	if opts.OrderBy != "" {
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: opts.OrderBy},
			Desc:   opts.Desc,
		})
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	var rows []map[string]interface{}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table, err)
	}

	result := make([]domainRepo.Row, len(rows))
	for i, row := range rows {
		result[i] = domainRepo.Row(row)
	}
	return result, nil
}

func (s *gormRecordStore) SelectOne(ctx context.Context, table string, filter domainRepo.Filter) (domainRepo.Row, error) {
	rows, err := s.Select(ctx, table, filter, domainRepo.SelectOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return rows[0], nil
}

func (s *gormRecordStore) Insert(ctx context.Context, table string, row domainRepo.Row) (domainRepo.Row, error) {
	if len(row) == 0 {
		return nil, fmt.Errorf("refusing to insert empty row into %s", table)
	}

	if err := s.db.WithContext(ctx).Table(table).Create(map[string]interface{}(row)).Error; err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return row, nil
}

func (s *gormRecordStore) Update(ctx context.Context, table string, patch domainRepo.Row, filter domainRepo.Filter) (int64, error) {
	if len(filter) == 0 {
		return 0, fmt.Errorf("refusing to update %s without a filter", table)
	}
	if len(patch) == 0 {
		return 0, fmt.Errorf("refusing to update %s with an empty patch", table)
	}

	res := s.db.WithContext(ctx).Table(table).
		Where(map[string]interface{}(filter)).
		Updates(map[string]interface{}(patch))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update %s: %w", table, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormRecordStore) Delete(ctx context.Context, table string, filter domainRepo.Filter) (int64, error) {
	if len(filter) == 0 {
		return 0, fmt.Errorf("refusing to delete from %s without a filter", table)
	}

	res := s.db.WithContext(ctx).Table(table).
		Where(map[string]interface{}(filter)).
		Delete(nil)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, res.Error)
	}
	return res.RowsAffected, nil
}
