package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/movewell/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errCompletionRaced = errors.New("completion inserted concurrently")

type ProgressRepository struct {
	database *gorm.DB
}

func NewProgressRepository(database *gorm.DB) *ProgressRepository {
	return &ProgressRepository{database: database}
}

func preloadCompletions(query *gorm.DB) *gorm.DB {
	return query.Preload("Completions", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func (repo *ProgressRepository) FindByUserAndDay(userID uint, day time.Time) (models.ProgressEntry, bool, error) {
	return findEntryByDay(repo.database, userID, day)
}

// ListByUserDayRange returns the entries with fromDay <= day < toDay, newest first.
func (repo *ProgressRepository) ListByUserDayRange(userID uint, fromDay time.Time, toDay time.Time) ([]models.ProgressEntry, error) {
	entries := make([]models.ProgressEntry, 0)
	if err := preloadCompletions(repo.database).
		Where("user_id = ? AND day >= ? AND day < ?", userID, fromDay, toDay).
		Order("day DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *ProgressRepository) AddSteps(userID uint, day time.Time, count int64, now time.Time) (models.ProgressEntry, error) {
	var entry models.ProgressEntry
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		entryID, err := ensureEntry(tx, userID, day, now)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.ProgressEntry{}).Where("id = ?", entryID).Updates(map[string]any{
			"steps":      gorm.Expr("steps + ?", count),
			"updated_at": now,
		}).Error; err != nil {
			return err
		}
		entry, err = loadEntry(tx, entryID)
		return err
	})
	if err != nil {
		return models.ProgressEntry{}, err
	}
	return entry, nil
}

// AppendCompletion adds completion to the entry of day, creating the entry if
// needed. When dedupFrom is set and a completion of the same kind and external
// id exists on a day in [dedupFrom, day], the entry holding it is returned
// unchanged with duplicate=true.
func (repo *ProgressRepository) AppendCompletion(userID uint, day time.Time, completion models.Completion, dedupFrom *time.Time, now time.Time) (entry models.ProgressEntry, duplicate bool, err error) {
	if !completion.Kind.Valid() {
		return models.ProgressEntry{}, false, fmt.Errorf("unsupported completion kind %q", completion.Kind)
	}

	err = repo.database.Transaction(func(tx *gorm.DB) error {
		if dedupFrom != nil {
			existingID, found, err := findDuplicateEntryID(tx, userID, completion, *dedupFrom, day)
			if err != nil {
				return err
			}
			if found {
				duplicate = true
				entry, err = loadEntry(tx, existingID)
				return err
			}
		}

		entryID, err := ensureEntry(tx, userID, day, now)
		if err != nil {
			return err
		}

		completion.ID = 0
		completion.EntryID = entryID
		completion.UserID = userID
		completion.Day = day
		completion.RecordedAt = now
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errCompletionRaced
			}
			return err
		}

		updates := map[string]any{"updated_at": now}
		if completion.Duration != nil {
			updates["minutes_exercised"] = gorm.Expr("minutes_exercised + ?", *completion.Duration)
		}
		if completion.CaloriesBurned != 0 {
			updates["calories_burned"] = gorm.Expr("calories_burned + ?", completion.CaloriesBurned)
		}
		if err := tx.Model(&models.ProgressEntry{}).Where("id = ?", entryID).Updates(updates).Error; err != nil {
			return err
		}

		entry, err = loadEntry(tx, entryID)
		return err
	})

	if errors.Is(err, errCompletionRaced) {
		existingID, found, lookupErr := findDuplicateEntryID(repo.database, userID, completion, day, day)
		if lookupErr != nil {
			return models.ProgressEntry{}, false, lookupErr
		}
		if !found {
			return models.ProgressEntry{}, false, err
		}
		entry, err = loadEntry(repo.database, existingID)
		if err != nil {
			return models.ProgressEntry{}, false, err
		}
		return entry, true, nil
	}
	if err != nil {
		return models.ProgressEntry{}, false, err
	}
	return entry, duplicate, nil
}

func findEntryByDay(database *gorm.DB, userID uint, day time.Time) (models.ProgressEntry, bool, error) {
	entries := make([]models.ProgressEntry, 0, 1)
	result := preloadCompletions(database).
		Where("user_id = ? AND day >= ? AND day < ?", userID, day, day.AddDate(0, 0, 1)).
		Order("id ASC").
		Limit(1).
		Find(&entries)
	if result.Error != nil {
		return models.ProgressEntry{}, false, result.Error
	}
	if len(entries) == 0 {
		return models.ProgressEntry{}, false, nil
	}
	return entries[0], true, nil
}

func loadEntry(database *gorm.DB, entryID uint) (models.ProgressEntry, error) {
	var entry models.ProgressEntry
	if err := preloadCompletions(database).First(&entry, entryID).Error; err != nil {
		return models.ProgressEntry{}, err
	}
	return entry, nil
}

// ensureEntry upserts the (user, day) row and returns its id.
func ensureEntry(tx *gorm.DB, userID uint, day time.Time, now time.Time) (uint, error) {
	candidate := models.ProgressEntry{
		UserID:    userID,
		Day:       day,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoNothing: true,
	}).Omit("Completions").Create(&candidate).Error; err != nil {
		return 0, err
	}

	var row struct {
		ID uint `gorm:"column:id"`
	}
	result := tx.Model(&models.ProgressEntry{}).
		Select("id").
		Where("user_id = ? AND day >= ? AND day < ?", userID, day, day.AddDate(0, 0, 1)).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return 0, result.Error
	}
	if row.ID == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return row.ID, nil
}

func findDuplicateEntryID(database *gorm.DB, userID uint, completion models.Completion, fromDay time.Time, toDay time.Time) (uint, bool, error) {
	matches := make([]models.Completion, 0, 1)
	if err := database.
		Select("entry_id").
		Where(
			"user_id = ? AND kind = ? AND external_id = ? AND day >= ? AND day < ?",
			userID, completion.Kind, completion.ExternalID, fromDay, toDay.AddDate(0, 0, 1),
		).
		Order("day DESC, id ASC").
		Limit(1).
		Find(&matches).Error; err != nil {
		return 0, false, err
	}
	if len(matches) == 0 {
		return 0, false, nil
	}
	return matches[0].EntryID, true, nil
}
