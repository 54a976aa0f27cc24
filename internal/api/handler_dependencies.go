package api

import (
	"github.com/terraincognita07/movewell/internal/db"
	"github.com/terraincognita07/movewell/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.accountService = services.NewAccountService(handler.repositories.Users)
	handler.streakService = services.NewStreakService(handler.repositories.Streaks)
	handler.ledgerService = services.NewLedgerService(handler.repositories.Progress, handler.streakService)
	handler.statsService = services.NewStatsService(handler.repositories.Progress, handler.streakService)
	return handler
}
