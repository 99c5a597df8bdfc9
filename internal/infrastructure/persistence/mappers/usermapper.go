package mappers

import (
	"time"

	"carelink/internal/domain/user"
	"carelink/internal/infrastructure/persistence/models"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type userMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &userMapperImpl{}
}

func (m *userMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID(),
		Email:          u.Email(),
		Name:           u.Name(),
		HashedPassword: u.HashedPassword(),
		IsActive:       u.IsActive(),
		CreatedAt:      u.CreatedAt().UnixMilli(),
	}
}

func (m *userMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Email,
		model.Name,
		model.HashedPassword,
		model.IsActive,
		time.UnixMilli(model.CreatedAt).UTC(),
	)
}
