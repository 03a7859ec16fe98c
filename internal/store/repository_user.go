// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/models"
)

var usersTable = table[models.User]{
	name:    tableUsers,
	columns: userColumns,
	fields:  userFields,
	scan:    scanUser,
}

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) List(ctx context.Context, spec query.Spec) (models.List[models.User], error) {
	return listPage(ctx, r.db, usersTable, spec)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return getOne(ctx, r.db, usersTable, query.Eq{Field: "id", Value: id})
}

// GetByIDs backs batched relation expansion.
func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	return getByIDs(ctx, r.db, usersTable, ids)
}

// FindByUsername returns [ErrNotFound] when no account has that username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := getOne(ctx, r.db, usersTable, query.Eq{Field: "username", Value: username})
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).
			Str("func", "*userRepository.FindByUsername").
			Msg("user lookup failed")
		return models.User{}, err
	}
	return user, nil
}

// Create persists a new account. A taken username yields [ErrAlreadyExists].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	created, err := insertRow(ctx, r.db, usersTable, map[string]any{
		"id":            user.ID,
		"username":      user.Username,
		"display_name":  user.DisplayName,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.Create").
			Str("username", user.Username).
			Msg("failed to create user")
		return models.User{}, err
	}

	return created, nil
}

func (r *userRepository) Update(ctx context.Context, id string, changes models.UserChanges) (models.User, error) {
	set := map[string]any{}
	setIfPresent(set, "username", changes.Username)
	setIfPresent(set, "display_name", changes.DisplayName)
	setIfPresent(set, "email", changes.Email)

	return updateRow(ctx, r.db, usersTable, id, set)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q, args, err := psql.Update(tableUsers).
		Set("password_hash", passwordHash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.UpdatePassword").
			Str("id", id).
			Msg("failed to update password")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, tableUsers, id)
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.DisplayName,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
