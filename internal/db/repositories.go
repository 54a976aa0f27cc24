package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Progress *ProgressRepository
	Streaks  *StreakRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Progress: NewProgressRepository(database),
		Streaks:  NewStreakRepository(database),
	}
}
