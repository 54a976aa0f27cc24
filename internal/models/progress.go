package models

import "time"

// CompletionKind tags which list of a ProgressEntry a Completion belongs to.
type CompletionKind string

const (
	KindWorkout CompletionKind = "workout"
	KindHabit   CompletionKind = "habit"
	KindStretch CompletionKind = "stretch"
	KindWarmup  CompletionKind = "warmup"
)

func (kind CompletionKind) Valid() bool {
	switch kind {
	case KindWorkout, KindHabit, KindStretch, KindWarmup:
		return true
	default:
		return false
	}
}

// Timed kinds carry a duration and contribute to minutes and calories.
func (kind CompletionKind) Timed() bool {
	return kind == KindWorkout || kind == KindStretch || kind == KindWarmup
}

// ProgressEntry is the ledger row for one user and one UTC calendar day.
type ProgressEntry struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	UserID           uint         `gorm:"not null;uniqueIndex:uidx_progress_user_day" json:"userId"`
	Day              time.Time    `gorm:"type:date;not null;uniqueIndex:uidx_progress_user_day" json:"date"`
	Steps            int64        `gorm:"not null;default:0" json:"steps"`
	CaloriesBurned   float64      `gorm:"not null;default:0" json:"caloriesBurned"`
	MinutesExercised float64      `gorm:"not null;default:0" json:"minutesExercised"`
	Completions      []Completion `gorm:"foreignKey:EntryID" json:"-"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

func (entry ProgressEntry) CompletionsOf(kind CompletionKind) []Completion {
	items := make([]Completion, 0)
	for _, completion := range entry.Completions {
		if completion.Kind == kind {
			items = append(items, completion)
		}
	}
	return items
}

func (entry ProgressEntry) CountOf(kind CompletionKind) int {
	count := 0
	for _, completion := range entry.Completions {
		if completion.Kind == kind {
			count++
		}
	}
	return count
}

// Completion is one item of a completion list. Duration is in minutes,
// Actual is a kind specific measurement (kilometres for Walking/Running habits).
type Completion struct {
	ID             uint           `gorm:"primaryKey"`
	EntryID        uint           `gorm:"not null;index"`
	UserID         uint           `gorm:"not null;uniqueIndex:uidx_completion_dedup,where:kind <> 'habit'"`
	Day            time.Time      `gorm:"type:date;not null;uniqueIndex:uidx_completion_dedup,where:kind <> 'habit'"`
	Kind           CompletionKind `gorm:"not null;uniqueIndex:uidx_completion_dedup,where:kind <> 'habit'"`
	ExternalID     string         `gorm:"not null;uniqueIndex:uidx_completion_dedup,where:kind <> 'habit'"`
	Title          string         `gorm:"not null"`
	Duration       *float64
	CaloriesBurned float64 `gorm:"not null;default:0"`
	Actual         *float64
	RecordedAt     time.Time `gorm:"not null"`
}
