package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/domain/user"
	sharederrors "carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type mockUserRepo struct {
	SaveFunc        func(ctx context.Context, u *user.User) error
	FindByIDFunc    func(ctx context.Context, userID uint) (*user.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *mockUserRepo) Save(ctx context.Context, u *user.User) error { return m.SaveFunc(ctx, u) }
func (m *mockUserRepo) FindByID(ctx context.Context, userID uint) (*user.User, error) {
	return m.FindByIDFunc(ctx, userID)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

type mockHasher struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(password, hash string) error
}

func (m *mockHasher) Hash(password string) (string, error) { return m.HashFunc(password) }
func (m *mockHasher) Verify(password, hash string) error   { return m.VerifyFunc(password, hash) }

type mockTokenIssuer struct {
	GenerateFunc func(userID uint, email string) (string, int64, error)
}

func (m *mockTokenIssuer) Generate(userID uint, email string) (string, int64, error) {
	return m.GenerateFunc(userID, email)
}

func activeUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(9, "alice@example.com", "Alice", "stored-hash", true, time.Now().UTC())
	require.NoError(t, err)
	return u
}

func TestRegisterUserSuccess(t *testing.T) {
	var saved *user.User
	repo := &mockUserRepo{
		FindByEmailFunc: func(ctx context.Context, email string) (*user.User, error) { return nil, nil },
		SaveFunc: func(ctx context.Context, u *user.User) error {
			saved = u
			return u.SetID(9)
		},
	}
	hasher := &mockHasher{
		HashFunc: func(password string) (string, error) { return "stored-hash", nil },
	}

	uc := NewRegisterUserUseCase(repo, hasher, logger.NewLogger())
	result, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email:    "Alice@Example.com",
		Name:     "Alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(9), result.UserID)
	// Emails are stored normalized.
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, "stored-hash", saved.HashedPassword())
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		FindByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			return activeUser(t), nil
		},
	}
	uc := NewRegisterUserUseCase(repo, &mockHasher{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email: "alice@example.com", Name: "Alice", Password: "correct horse",
	})
	require.Error(t, err)
	appErr, ok := sharederrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrorTypeConflict, appErr.Type)
}

func TestRegisterUserShortPassword(t *testing.T) {
	uc := NewRegisterUserUseCase(&mockUserRepo{}, &mockHasher{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email: "alice@example.com", Name: "Alice", Password: "short",
	})
	require.Error(t, err)
	appErr, ok := sharederrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrorTypeValidation, appErr.Type)
}

func TestLoginUserSuccess(t *testing.T) {
	repo := &mockUserRepo{
		FindByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			return activeUser(t), nil
		},
	}
	hasher := &mockHasher{
		VerifyFunc: func(password, hash string) error { return nil },
	}
	tokens := &mockTokenIssuer{
		GenerateFunc: func(userID uint, email string) (string, int64, error) {
			return "signed-token", 3600, nil
		},
	}

	uc := NewLoginUserUseCase(repo, hasher, tokens, logger.NewLogger())
	result, err := uc.Execute(context.Background(), LoginUserCommand{
		Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.AccessToken)
	assert.Equal(t, int64(3600), result.ExpiresIn)
	assert.Equal(t, uint(9), result.UserID)
}

func TestLoginUserWrongPassword(t *testing.T) {
	repo := &mockUserRepo{
		FindByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			return activeUser(t), nil
		},
	}
	hasher := &mockHasher{
		VerifyFunc: func(password, hash string) error { return errors.New("password verification failed") },
	}

	uc := NewLoginUserUseCase(repo, hasher, &mockTokenIssuer{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), LoginUserCommand{
		Email: "alice@example.com", Password: "wrong",
	})
	require.Error(t, err)
	appErr, ok := sharederrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrorTypeUnauthorized, appErr.Type)
}

func TestLoginUserUnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		FindByEmailFunc: func(ctx context.Context, email string) (*user.User, error) { return nil, nil },
	}

	uc := NewLoginUserUseCase(repo, &mockHasher{}, &mockTokenIssuer{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), LoginUserCommand{
		Email: "nobody@example.com", Password: "whatever",
	})
	require.Error(t, err)
	appErr, ok := sharederrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrorTypeUnauthorized, appErr.Type)
}
