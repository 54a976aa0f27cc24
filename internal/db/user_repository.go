package db

import (
	"github.com/terraincognita07/movewell/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	return repo.emailTaken(email, 0)
}

// ExistsByNormalizedEmailExcept ignores the row of userID, so keeping one's
// own address is not a conflict.
func (repo *UserRepository) ExistsByNormalizedEmailExcept(email string, userID uint) (bool, error) {
	return repo.emailTaken(email, userID)
}

func (repo *UserRepository) emailTaken(email string, exceptUserID uint) (bool, error) {
	query := repo.database.Model(&models.User{}).Where("lower(trim(email)) = ?", email)
	if exceptUserID != 0 {
		query = query.Where("id <> ?", exceptUserID)
	}

	var matched int64
	if err := query.Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	}).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}
