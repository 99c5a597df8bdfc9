package usecases

import (
	"context"

	"carelink/internal/domain/user"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

// PasswordHasher hashes and verifies user passwords. Satisfied by
// auth.BcryptPasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenIssuer signs access tokens. Satisfied by auth.JWTService.
type TokenIssuer interface {
	Generate(userID uint, email string) (token string, expiresIn int64, err error)
}

type RegisterUserCommand struct {
	Email    string
	Name     string
	Password string
}

type RegisterUserResult struct {
	UserID uint
	Email  string
	Name   string
}

type RegisterUserUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewRegisterUserUseCase(userRepo user.UserRepository, hasher PasswordHasher, logger logger.Interface) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	if len(cmd.Password) < 8 {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	existing, err := uc.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to check existing user", "email", cmd.Email, "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}
	if existing != nil {
		return nil, errors.NewConflictError("email is already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	newUser, err := user.NewUser(cmd.Email, cmd.Name, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Save(ctx, newUser); err != nil {
		uc.logger.Errorw("failed to save user", "email", cmd.Email, "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "email", newUser.Email())
	return &RegisterUserResult{
		UserID: newUser.ID(),
		Email:  newUser.Email(),
		Name:   newUser.Name(),
	}, nil
}
