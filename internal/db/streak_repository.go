package db

import (
	"github.com/terraincognita07/movewell/internal/models"
	"gorm.io/gorm"
)

type StreakRepository struct {
	database *gorm.DB
}

func NewStreakRepository(database *gorm.DB) *StreakRepository {
	return &StreakRepository{database: database}
}

func (repo *StreakRepository) FindByUserID(userID uint) (models.StreakRecord, bool, error) {
	records := make([]models.StreakRecord, 0, 1)
	if err := repo.database.Where("user_id = ?", userID).Limit(1).Find(&records).Error; err != nil {
		return models.StreakRecord{}, false, err
	}
	if len(records) == 0 {
		return models.StreakRecord{}, false, nil
	}
	return records[0], true, nil
}

// Create fails with gorm.ErrDuplicatedKey when another writer created the
// user's record first.
func (repo *StreakRepository) Create(record *models.StreakRecord) error {
	return repo.database.Create(record).Error
}

// UpdateIfVersion writes record only when the stored version still equals
// record.Version, bumping it. It reports whether the row was written.
func (repo *StreakRepository) UpdateIfVersion(record models.StreakRecord) (bool, error) {
	result := repo.database.Model(&models.StreakRecord{}).
		Where("id = ? AND version = ?", record.ID, record.Version).
		Updates(map[string]any{
			"current_streak":           record.CurrentStreak,
			"longest_streak":           record.LongestStreak,
			"last_activity_date":       record.LastActivityDate,
			"total_workouts_completed": record.TotalWorkoutsCompleted,
			"total_habits_completed":   record.TotalHabitsCompleted,
			"version":                  record.Version + 1,
			"updated_at":               record.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
