package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/movewell/internal/models"
	"gorm.io/gorm"
)

var (
	ErrStreakLoadFailed   = errors.New("load streak failed")
	ErrStreakUpdateFailed = errors.New("update streak failed")
	ErrStreakConflict     = errors.New("streak update conflict")
)

const (
	streakUpdateAttempts = 5
	streakLockStripes    = 64
)

type StreakRepository interface {
	FindByUserID(userID uint) (models.StreakRecord, bool, error)
	Create(record *models.StreakRecord) error
	UpdateIfVersion(record models.StreakRecord) (bool, error)
}

// StreakService serializes updates per user with striped in-process locks;
// the version check covers writers in other processes.
type StreakService struct {
	streaks StreakRepository
	now     func() time.Time
	locks   [streakLockStripes]sync.Mutex
}

func NewStreakService(streaks StreakRepository) *StreakService {
	return &StreakService{streaks: streaks, now: time.Now}
}

func (service *StreakService) Get(userID uint) (models.StreakRecord, error) {
	record, found, err := service.streaks.FindByUserID(userID)
	if err != nil {
		return models.StreakRecord{}, fmt.Errorf("%w: %v", ErrStreakLoadFailed, err)
	}
	if !found {
		return models.StreakRecord{UserID: userID}, nil
	}
	return record, nil
}

// RecordActivity applies one qualifying activity on today to the user's
// streak, retrying when a concurrent writer bumped the record version first.
func (service *StreakService) RecordActivity(userID uint, kind models.CompletionKind, today time.Time) error {
	today = CanonicalDay(today)

	lock := &service.locks[userID%streakLockStripes]
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < streakUpdateAttempts; attempt++ {
		current, found, err := service.streaks.FindByUserID(userID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStreakLoadFailed, err)
		}
		if !found {
			current = models.StreakRecord{UserID: userID}
		}

		next := AdvanceStreak(current, kind, today)
		next.UpdatedAt = service.now().UTC()

		if !found {
			next.CreatedAt = next.UpdatedAt
			err := service.streaks.Create(&next)
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			if err != nil {
				return fmt.Errorf("%w: %v", ErrStreakUpdateFailed, err)
			}
			return nil
		}

		written, err := service.streaks.UpdateIfVersion(next)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStreakUpdateFailed, err)
		}
		if written {
			return nil
		}
	}
	return ErrStreakConflict
}

// AdvanceStreak is the pure streak transition for an activity on today. A
// repeat on the last active day leaves the streak alone, the day after extends
// it, and anything else (a gap, no history, or a stored date after today)
// starts a new streak of one. Totals always count.
func AdvanceStreak(record models.StreakRecord, kind models.CompletionKind, today time.Time) models.StreakRecord {
	today = CanonicalDay(today)
	next := record

	var last time.Time
	if record.LastActivityDate != nil {
		last = CanonicalDay(*record.LastActivityDate)
	}

	switch {
	case record.LastActivityDate != nil && last.Equal(today):
		// same day
	case record.LastActivityDate != nil && last.AddDate(0, 0, 1).Equal(today):
		next.CurrentStreak = record.CurrentStreak + 1
		next.LastActivityDate = &today
	default:
		next.CurrentStreak = 1
		next.LastActivityDate = &today
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}

	if kind == models.KindHabit {
		next.TotalHabitsCompleted++
	} else {
		next.TotalWorkoutsCompleted++
	}
	return next
}
