package models

import "time"

type StreakRecord struct {
	ID                     uint       `gorm:"primaryKey" json:"-"`
	UserID                 uint       `gorm:"not null;uniqueIndex" json:"userId"`
	CurrentStreak          int        `gorm:"not null;default:0" json:"currentStreak"`
	LongestStreak          int        `gorm:"not null;default:0" json:"longestStreak"`
	LastActivityDate       *time.Time `gorm:"type:date" json:"lastActivityDate"`
	TotalWorkoutsCompleted int64      `gorm:"not null;default:0" json:"totalWorkoutsCompleted"`
	TotalHabitsCompleted   int64      `gorm:"not null;default:0" json:"totalHabitsCompleted"`
	Version                int64      `gorm:"not null;default:0" json:"-"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

func (StreakRecord) TableName() string {
	return "streaks"
}
