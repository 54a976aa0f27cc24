package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/movewell/internal/models"
)

type StatsProgressRepository interface {
	FindByUserAndDay(userID uint, day time.Time) (models.ProgressEntry, bool, error)
	ListByUserDayRange(userID uint, fromDay time.Time, toDay time.Time) ([]models.ProgressEntry, error)
}

type StreakReader interface {
	Get(userID uint) (models.StreakRecord, error)
}

type DailyStats struct {
	Distance           float64             `json:"distance"`
	MinutesExercised   float64             `json:"minutesExercised"`
	CaloriesBurned     float64             `json:"caloriesBurned"`
	WorkoutsCompleted  int                 `json:"workoutsCompleted"`
	HabitsCompleted    int                 `json:"habitsCompleted"`
	StretchesCompleted int                 `json:"stretchesCompleted"`
	WarmupsCompleted   int                 `json:"warmupsCompleted"`
	Habits             []models.Completion `json:"-"`
}

type StreakStats struct {
	Current       int   `json:"current"`
	Longest       int   `json:"longest"`
	TotalWorkouts int64 `json:"totalWorkouts"`
	TotalHabits   int64 `json:"totalHabits"`
}

// WeeklyBucket.Streak is always zero; per-day streaks are not tracked.
type WeeklyBucket struct {
	Workouts int     `json:"workouts"`
	Habits   int     `json:"habits"`
	Minutes  float64 `json:"minutes"`
	Calories float64 `json:"calories"`
	Km       float64 `json:"km"`
	Streak   int     `json:"streak"`
}

type ProgressStats struct {
	Day       time.Time
	WeekStart time.Time
	Today     DailyStats
	Streak    StreakStats
	Weekly    map[string]WeeklyBucket
}

type StatsService struct {
	progress StatsProgressRepository
	streaks  StreakReader
}

func NewStatsService(progress StatsProgressRepository, streaks StreakReader) *StatsService {
	return &StatsService{progress: progress, streaks: streaks}
}

func (service *StatsService) BuildStats(userID uint, rawDate string, now time.Time) (ProgressStats, error) {
	day, err := ResolveDay(rawDate, now)
	if err != nil {
		return ProgressStats{}, err
	}

	entry, found, err := service.progress.FindByUserAndDay(userID, day)
	if err != nil {
		return ProgressStats{}, fmt.Errorf("%w: %v", ErrProgressLoadFailed, err)
	}
	if !found {
		entry = models.ProgressEntry{UserID: userID, Day: day}
	}

	streak, err := service.streaks.Get(userID)
	if err != nil {
		return ProgressStats{}, err
	}

	weekStart := WeekStart(day)
	weekEntries, err := service.progress.ListByUserDayRange(userID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return ProgressStats{}, fmt.Errorf("%w: %v", ErrProgressLoadFailed, err)
	}

	return ProgressStats{
		Day:       day,
		WeekStart: weekStart,
		Today:     summarizeDay(entry),
		Streak: StreakStats{
			Current:       streak.CurrentStreak,
			Longest:       streak.LongestStreak,
			TotalWorkouts: streak.TotalWorkoutsCompleted,
			TotalHabits:   streak.TotalHabitsCompleted,
		},
		Weekly: buildWeeklyBuckets(weekStart, weekEntries),
	}, nil
}

func summarizeDay(entry models.ProgressEntry) DailyStats {
	return DailyStats{
		Distance:           DistanceKm(entry),
		MinutesExercised:   entry.MinutesExercised,
		CaloriesBurned:     entry.CaloriesBurned,
		WorkoutsCompleted:  entry.CountOf(models.KindWorkout),
		HabitsCompleted:    entry.CountOf(models.KindHabit),
		StretchesCompleted: entry.CountOf(models.KindStretch),
		WarmupsCompleted:   entry.CountOf(models.KindWarmup),
		Habits:             entry.CompletionsOf(models.KindHabit),
	}
}

func buildWeeklyBuckets(weekStart time.Time, entries []models.ProgressEntry) map[string]WeeklyBucket {
	byDay := make(map[string]models.ProgressEntry, len(entries))
	for _, entry := range entries {
		byDay[FormatDay(entry.Day)] = entry
	}

	weekly := make(map[string]WeeklyBucket, 7)
	for offset := 0; offset < 7; offset++ {
		day := weekStart.AddDate(0, 0, offset)
		entry, ok := byDay[FormatDay(day)]
		if !ok {
			weekly[WeekdayKey(day)] = WeeklyBucket{}
			continue
		}
		weekly[WeekdayKey(day)] = WeeklyBucket{
			Workouts: entry.CountOf(models.KindWorkout),
			Habits:   entry.CountOf(models.KindHabit),
			Minutes:  entry.MinutesExercised,
			Calories: entry.CaloriesBurned,
			Km:       DistanceKm(entry),
		}
	}
	return weekly
}

// DistanceKm sums the actual values of the entry's Walking/Running habits.
func DistanceKm(entry models.ProgressEntry) float64 {
	total := 0.0
	for _, habit := range entry.CompletionsOf(models.KindHabit) {
		if habit.Actual == nil || !IsDistanceHabit(habit.Title) {
			continue
		}
		total += *habit.Actual
	}
	return total
}
