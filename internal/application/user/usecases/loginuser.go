package usecases

import (
	"context"

	"carelink/internal/domain/user"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type LoginUserCommand struct {
	Email    string
	Password string
}

type LoginUserResult struct {
	UserID      uint
	Email       string
	Name        string
	AccessToken string
	ExpiresIn   int64
}

type LoginUserUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUserUseCase(userRepo user.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger logger.Interface) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error) {
	u, err := uc.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to look up user", "email", cmd.Email, "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}
	// Same answer for unknown email and wrong password.
	if u == nil {
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}
	if err := uc.hasher.Verify(cmd.Password, u.HashedPassword()); err != nil {
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}
	if !u.IsActive() {
		return nil, errors.NewForbiddenError("account is disabled")
	}

	token, expiresIn, err := uc.tokens.Generate(u.ID(), u.Email())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	uc.logger.Infow("user logged in", "user_id", u.ID())
	return &LoginUserResult{
		UserID:      u.ID(),
		Email:       u.Email(),
		Name:        u.Name(),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}
