package usecase

import (
	"context"

	"slotboard/internal/domain/user"
	"slotboard/internal/infra"
	"slotboard/internal/infra/db"
	"slotboard/internal/pkg/errs"
	"slotboard/internal/pkg/jwt"
	"slotboard/internal/pkg/password"
	"slotboard/internal/usecase/readmodel"
	"slotboard/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTokenGeneration = errs.New("token generation failed")
	ErrTokenValidation = errs.New("token validation failed")
)

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthUseCase interface {
	Register(ctx context.Context, params RegisterParams) (string, *readmodel.AuthorizedUserRM, error)
	Login(ctx context.Context, email, plainPassword string) (string, *readmodel.AuthorizedUserRM, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.AuthorizedUserRM, error)
}

type authUseCaseImpl struct {
	uow        shared.UnitOfWork
	userRepo   shared.UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(uow shared.UnitOfWork, userRepo shared.UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		uow:        uow,
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Register(ctx context.Context, params RegisterParams) (string, *readmodel.AuthorizedUserRM, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return "", nil, err
	}
	pass, err := user.NewPassword(params.Password)
	if err != nil {
		return "", nil, err
	}

	hash, err := password.HashPassword(pass.Value())
	if err != nil {
		return "", nil, err
	}

	entity := user.NewUser(email, hash, user.RoleUser, params.FirstName, params.LastName)

	err = a.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		_, err := a.userRepo.Create(ctx, dbtx, entity)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrEmailTaken)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	token, err := a.jwtService.GenerateToken(entity.ID(), entity.Role())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	rm := &readmodel.AuthorizedUserRM{
		ID:        entity.ID(),
		Email:     entity.Email().Value(),
		Role:      entity.Role().String(),
		FirstName: entity.FirstName(),
		LastName:  entity.LastName(),
	}
	return token, rm, nil
}

func (a *authUseCaseImpl) Login(ctx context.Context, emailStr, plainPassword string) (string, *readmodel.AuthorizedUserRM, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return "", nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	var rm *readmodel.AuthorizedUserRM
	var hash string
	err = a.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		rm, hash, err = a.userRepo.FindByEmail(ctx, dbtx, email)
		return err
	})
	if err != nil {
		return "", nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	if err := password.ComparePassword(hash, plainPassword); err != nil {
		return "", nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	role, err := user.NewRole(rm.Role)
	if err != nil {
		return "", nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	token, err := a.jwtService.GenerateToken(rm.ID, role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, rm, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	var rm *readmodel.AuthorizedUserRM
	err := a.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		rm, err = a.userRepo.FindByID(ctx, dbtx, userID)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, err
	}
	return rm, nil
}
