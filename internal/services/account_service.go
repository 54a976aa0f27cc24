package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/movewell/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrCurrentPasswordInvalid = errors.New("current password is incorrect")

type AccountUserRepository interface {
	FindByID(userID uint) (models.User, error)
	ExistsByNormalizedEmailExcept(email string, userID uint) (bool, error)
	UpdateByID(userID uint, updates map[string]any) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
}

type AccountService struct {
	users      AccountUserRepository
	bcryptCost int
}

func NewAccountService(users AccountUserRepository) *AccountService {
	return &AccountService{users: users, bcryptCost: bcrypt.DefaultCost}
}

func (service *AccountService) Profile(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAccountLoadFailed, err)
	}
	return user, nil
}

func (service *AccountService) UpdateProfile(userID uint, nameRaw string, emailRaw string, now time.Time) (models.User, error) {
	name := strings.TrimSpace(nameRaw)
	if name == "" || strings.TrimSpace(emailRaw) == "" {
		return models.User{}, invalidInput("name and email are required")
	}
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, invalidInput("email address is not valid")
	}

	if _, err := service.Profile(userID); err != nil {
		return models.User{}, err
	}

	taken, err := service.users.ExistsByNormalizedEmailExcept(email, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAccountLoadFailed, err)
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	if err := service.users.UpdateByID(userID, map[string]any{
		"name":       name,
		"email":      email,
		"updated_at": now.UTC(),
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrAccountSaveFailed, err)
	}
	return service.Profile(userID)
}

func (service *AccountService) SetProfilePicture(userID uint, pictureRaw string, now time.Time) (models.User, error) {
	picture := strings.TrimSpace(pictureRaw)
	if picture == "" {
		return models.User{}, invalidInput("profilePicture is required")
	}
	if _, err := service.Profile(userID); err != nil {
		return models.User{}, err
	}

	if err := service.users.UpdateByID(userID, map[string]any{
		"profile_picture": picture,
		"updated_at":      now.UTC(),
	}); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAccountSaveFailed, err)
	}
	return service.Profile(userID)
}

// ChangePassword verifies the current password and clears any forced-change flag.
func (service *AccountService) ChangePassword(userID uint, currentRaw string, newRaw string) error {
	current := strings.TrimSpace(currentRaw)
	next := strings.TrimSpace(newRaw)
	if current == "" || next == "" {
		return invalidInput("currentPassword and newPassword are required")
	}
	if err := ValidatePasswordStrength(next); err != nil {
		return err
	}

	user, err := service.Profile(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrCurrentPasswordInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), service.bcryptCost)
	if err != nil {
		return fmt.Errorf("%w: hash password: %v", ErrAccountSaveFailed, err)
	}
	if err := service.users.UpdatePassword(userID, string(hash), false); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountSaveFailed, err)
	}
	return nil
}
