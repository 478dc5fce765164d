package sqlite

import (
	"errors"

	"github.com/agenticsoft/gescom/internal/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuthRepository implements auth.RepositoryAPI using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

// GetByUsername returns nil without error when the username is unknown, so
// the service can fail uniformly.
func (r *AuthRepository) GetByUsername(username string) (*auth.User, error) {
	var user auth.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetByID(id int64) (*auth.User, error) {
	var user auth.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&auth.User{}).Count(&count).Error
	return count, err
}

// SeedRoles inserts the fixed role rows, ignoring codes that already exist.
func (r *AuthRepository) SeedRoles(roles []auth.Role) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&roles).Error
}

func (r *AuthRepository) CreateUser(user *auth.User) error {
	return r.db.Create(user).Error
}
