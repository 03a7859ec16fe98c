// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/sourcegraph/conc/pool"

	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/models"
)

// table describes how records of type T are stored.
type table[T any] struct {
	name    string
	columns []string
	fields  fieldMap
	scan    func(rowScanner) (T, error)
}

func (t table[T]) returning() string {
	return "RETURNING " + strings.Join(t.columns, ", ")
}

func (t table[T]) selectAll() sq.SelectBuilder {
	return psql.Select(t.columns...).From(t.name)
}

// buildCountQuery and buildPageQuery derive both reads from one spec, so the
// total always describes the same filter as the page.
func buildCountQuery[T any](t table[T], spec query.Spec) (string, []any, error) {
	sb, err := applyFilter(psql.Select("COUNT(*)").From(t.name), spec, t.fields)
	if err != nil {
		return "", nil, err
	}
	q, args, err := sb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

func buildPageQuery[T any](t table[T], spec query.Spec) (string, []any, error) {
	sb, err := applyFilter(t.selectAll(), spec, t.fields)
	if err != nil {
		return "", nil, err
	}
	sb, err = applyWindow(sb, spec, t.fields)
	if err != nil {
		return "", nil, err
	}
	q, args, err := sb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

// listPage runs the count and the page fetch concurrently.
//
// The two reads are separate statements, not one snapshot: a write landing
// between them can make the total disagree with the page by that write.
func listPage[T any](ctx context.Context, db *DB, t table[T], spec query.Spec) (models.List[T], error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountQuery(t, spec)
	if err != nil {
		log.Err(err).Str("func", "listPage").Str("table", t.name).Msg("failed to build count query")
		return models.List[T]{}, err
	}
	pageQuery, pageArgs, err := buildPageQuery(t, spec)
	if err != nil {
		log.Err(err).Str("func", "listPage").Str("table", t.name).Msg("failed to build page query")
		return models.List[T]{}, err
	}

	var (
		total int64
		items []T
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		err := db.retry(ctx, func() error {
			return db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total)
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		items, err = fetchAll(ctx, db, t, pageQuery, pageArgs)
		return err
	})

	if err := p.Wait(); err != nil {
		log.Err(err).Str("func", "listPage").Str("table", t.name).Msg("failed to list records")
		return models.List[T]{}, err
	}

	return models.List[T]{Items: items, Total: total}, nil
}

func fetchAll[T any](ctx context.Context, db *DB, t table[T], q string, args []any) ([]T, error) {
	var rows *sql.Rows
	err := db.retry(ctx, func() error {
		var err error
		rows, err = db.QueryContext(ctx, q, args...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// getOne returns the first record matching where.
func getOne[T any](ctx context.Context, db *DB, t table[T], where query.Predicate) (T, error) {
	var zero T

	sb, err := applyFilter(t.selectAll(), query.Spec{Where: where}, t.fields)
	if err != nil {
		return zero, err
	}
	q, args, err := sb.Limit(1).ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item T
	err = db.retry(ctx, func() error {
		var scanErr error
		item, scanErr = t.scan(db.QueryRowContext(ctx, q, args...))
		return scanErr
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return zero, ErrNotFound
	case err != nil:
		return zero, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

// getByIDs returns the records with the given ids in no particular order.
// Unknown ids are skipped.
func getByIDs[T any](ctx context.Context, db *DB, t table[T], ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	q, args, err := t.selectAll().Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return fetchAll(ctx, db, t, q, args)
}

// insertRow inserts values and returns the stored record.
func insertRow[T any](ctx context.Context, db *DB, t table[T], values map[string]any) (T, error) {
	var zero T

	q, args, err := psql.Insert(t.name).SetMap(values).Suffix(t.returning()).ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := t.scan(db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return zero, ErrAlreadyExists
		}
		return zero, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return item, nil
}

// updateRow sets the given columns on record id and returns the stored
// record. updated_at is always refreshed.
func updateRow[T any](ctx context.Context, db *DB, t table[T], id string, set map[string]any) (T, error) {
	var zero T
	if len(set) == 0 {
		return zero, ErrNothingToUpdate
	}

	q, args, err := psql.Update(t.name).
		SetMap(set).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix(t.returning()).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := t.scan(db.QueryRowContext(ctx, q, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return zero, ErrNotFound
	case isUniqueViolation(err):
		return zero, ErrAlreadyExists
	case err != nil:
		return zero, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return item, nil
}

func deleteRow(ctx context.Context, db *DB, tableName, id string) error {
	q, args, err := psql.Delete(tableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
