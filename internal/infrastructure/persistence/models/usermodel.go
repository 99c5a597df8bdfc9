package models

type UserModel struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex;size:255;not null"`
	Name           string `gorm:"size:255;not null"`
	HashedPassword string `gorm:"size:255;not null"`
	IsActive       bool   `gorm:"not null;default:true"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
