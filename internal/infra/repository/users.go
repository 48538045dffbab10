package repository

import (
	"context"

	"slotboard/internal/domain/user"
	"slotboard/internal/infra"
	"slotboard/internal/infra/db"
	"slotboard/internal/pkg/pgconv"
	"slotboard/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.Role().String(), u.FirstName(), u.LastName())
	if err != nil {
		if pgconv.IsUniqueViolation(err, "") {
			return uuid.Nil, infra.WrapRepoErr("email already in use", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return u.ID(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, tx db.DBTX, email user.Email) (*readmodel.AuthorizedUserRM, string, error) {
	var rm readmodel.AuthorizedUserRM
	var hash string
	err := tx.QueryRow(ctx,
		`SELECT id, email, role, first_name, last_name, password_hash
		 FROM users WHERE email = $1`, email.Value()).
		Scan(&rm.ID, &rm.Email, &rm.Role, &rm.FirstName, &rm.LastName, &hash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &rm, hash, nil
}

func (r *UserRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	var rm readmodel.AuthorizedUserRM
	err := tx.QueryRow(ctx,
		`SELECT id, email, role, first_name, last_name FROM users WHERE id = $1`, id).
		Scan(&rm.ID, &rm.Email, &rm.Role, &rm.FirstName, &rm.LastName)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &rm, nil
}
