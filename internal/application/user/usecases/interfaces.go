package usecases

import "context"

type RegisterUserExecutor interface {
	Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error)
}

type LoginUserExecutor interface {
	Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error)
}
