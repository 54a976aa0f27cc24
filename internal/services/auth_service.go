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

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrAccountLoadFailed = errors.New("load account failed")
	ErrAccountSaveFailed = errors.New("save account failed")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	Create(user *models.User) error
}

type AuthService struct {
	users      AuthUserRepository
	bcryptCost int
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, bcryptCost: bcrypt.DefaultCost}
}

func (service *AuthService) Register(input RegistrationInput, now time.Time) (models.User, error) {
	normalized, err := NormalizeRegistrationInput(input)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(normalized.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAccountLoadFailed, err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), service.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: hash password: %v", ErrAccountSaveFailed, err)
	}

	user := models.User{
		Name:         normalized.Name,
		Email:        normalized.Email,
		PasswordHash: string(hash),
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrAccountSaveFailed, err)
	}
	return user, nil
}

func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAccountLoadFailed, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(user.PasswordHash)), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
