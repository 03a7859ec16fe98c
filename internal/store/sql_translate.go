// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/repraze/repraze-apps-sub001/internal/query"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// fieldMap is the allow-list of logical fields a table can be filtered, sorted
// or searched by, mapped to column names.
type fieldMap map[string]string

func (m fieldMap) column(field string) (string, error) {
	col, ok := m[field]
	if !ok {
		return "", fmt.Errorf("%w: unknown field %q", ErrBuildingSQLQuery, field)
	}
	return col, nil
}

// toSqlizer translates a predicate tree into a squirrel expression.
func toSqlizer(p query.Predicate, fields fieldMap) (sq.Sqlizer, error) {
	switch p := p.(type) {
	case query.Eq:
		col, err := fields.column(p.Field)
		if err != nil {
			return nil, err
		}
		return sq.Eq{col: p.Value}, nil

	case query.NotEq:
		col, err := fields.column(p.Field)
		if err != nil {
			return nil, err
		}
		return sq.NotEq{col: p.Value}, nil

	case query.Lt:
		col, err := fields.column(p.Field)
		if err != nil {
			return nil, err
		}
		return sq.Lt{col: p.Value}, nil

	case query.Gte:
		col, err := fields.column(p.Field)
		if err != nil {
			return nil, err
		}
		return sq.GtOrEq{col: p.Value}, nil

	case query.IsNull:
		col, err := fields.column(p.Field)
		if err != nil {
			return nil, err
		}
		return sq.Eq{col: nil}, nil

	case query.ContainsAll:
		col, err := fields.column(p.Field)
		if err != nil {
			return nil, err
		}
		return sq.Expr(col+" @> ?", textArray(p.Values)), nil

	case query.Overlaps:
		col, err := fields.column(p.Field)
		if err != nil {
			return nil, err
		}
		return sq.Expr(col+" && ?", textArray(p.Values)), nil

	case query.And:
		out := make(sq.And, 0, len(p))
		for _, child := range p {
			s, err := toSqlizer(child, fields)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil

	case query.Or:
		out := make(sq.Or, 0, len(p))
		for _, child := range p {
			s, err := toSqlizer(child, fields)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unsupported predicate %T", ErrBuildingSQLQuery, p)
	}
}

// searchSqlizer matches the term against the concatenated search fields with
// PostgreSQL full-text search.
func searchSqlizer(term string, searchFields []string, fields fieldMap) (sq.Sqlizer, error) {
	parts := make([]string, 0, len(searchFields))
	for _, f := range searchFields {
		col, err := fields.column(f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, "coalesce("+col+", '')")
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no search fields", ErrBuildingSQLQuery)
	}

	document := strings.Join(parts, " || ' ' || ")
	return sq.Expr(
		"to_tsvector('simple', "+document+") @@ plainto_tsquery('simple', ?)",
		term,
	), nil
}

// applyFilter adds the Where and Search parts of spec to sb.
func applyFilter(sb sq.SelectBuilder, spec query.Spec, fields fieldMap) (sq.SelectBuilder, error) {
	if spec.Where != nil {
		where, err := toSqlizer(spec.Where, fields)
		if err != nil {
			return sb, err
		}
		sb = sb.Where(where)
	}

	if term := strings.TrimSpace(spec.Search); term != "" {
		search, err := searchSqlizer(term, spec.SearchFields, fields)
		if err != nil {
			return sb, err
		}
		sb = sb.Where(search)
	}

	return sb, nil
}

// applyWindow adds ORDER BY, LIMIT and OFFSET. Without a sort the store's
// natural order is kept.
func applyWindow(sb sq.SelectBuilder, spec query.Spec, fields fieldMap) (sq.SelectBuilder, error) {
	if len(spec.Sort) > 0 {
		order := make([]string, 0, len(spec.Sort)+1)
		for _, s := range spec.Sort {
			col, err := fields.column(s.Field)
			if err != nil {
				return sb, err
			}
			dir := "ASC"
			if s.Direction == query.Desc {
				dir = "DESC"
			}
			order = append(order, col+" "+dir)
		}
		// id keeps pages stable when sort keys tie
		order = append(order, "id ASC")
		sb = sb.OrderBy(order...)
	}

	if spec.Page != nil {
		sb = sb.Limit(uint64(spec.Page.Limit)).Offset(uint64(spec.Page.Skip))
	}

	return sb, nil
}
