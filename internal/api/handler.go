package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/movewell/internal/db"
	"github.com/terraincognita07/movewell/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour
	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

type Options struct {
	SecretKey      string
	TokenTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

type Handler struct {
	db             *gorm.DB
	secretKey      []byte
	tokenTTL       time.Duration
	now            func() time.Time
	repositories   *db.Repositories
	authService    *services.AuthService
	accountService *services.AccountService
	streakService  *services.StreakService
	ledgerService  *services.LedgerService
	statsService   *services.StatsService
	writeLimiter   *userRateLimiter
	loginLimiter   *attemptLimiter
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if len(options.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	if options.TokenTTL <= 0 {
		options.TokenTTL = defaultAuthTokenTTL
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(options.SecretKey),
		tokenTTL:     options.TokenTTL,
		now:          time.Now,
		writeLimiter: newUserRateLimiter(options.RateLimitRPS, options.RateLimitBurst),
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database), nil
}
