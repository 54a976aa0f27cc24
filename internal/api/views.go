package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/movewell/internal/models"
	"github.com/terraincognita07/movewell/internal/services"
)

type userView struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	ProfilePicture     string    `json:"profilePicture"`
	MustChangePassword bool      `json:"mustChangePassword"`
	CreatedAt          time.Time `json:"createdAt"`
}

func newUserView(user models.User) userView {
	return userView{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		ProfilePicture:     user.ProfilePicture,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          user.CreatedAt,
	}
}

type progressView struct {
	ID                 uint        `json:"id,omitempty"`
	UserID             uint        `json:"userId"`
	Date               string      `json:"date"`
	Steps              int64       `json:"steps"`
	CaloriesBurned     float64     `json:"caloriesBurned"`
	MinutesExercised   float64     `json:"minutesExercised"`
	WorkoutsCompleted  []fiber.Map `json:"workoutsCompleted"`
	HabitsCompleted    []fiber.Map `json:"habitsCompleted"`
	StretchesCompleted []fiber.Map `json:"stretchesCompleted"`
	WarmupsCompleted   []fiber.Map `json:"warmupsCompleted"`
}

func newProgressView(entry models.ProgressEntry) progressView {
	return progressView{
		ID:                 entry.ID,
		UserID:             entry.UserID,
		Date:               services.FormatDay(entry.Day),
		Steps:              entry.Steps,
		CaloriesBurned:     entry.CaloriesBurned,
		MinutesExercised:   entry.MinutesExercised,
		WorkoutsCompleted:  completionViews(entry.CompletionsOf(models.KindWorkout)),
		HabitsCompleted:    completionViews(entry.CompletionsOf(models.KindHabit)),
		StretchesCompleted: completionViews(entry.CompletionsOf(models.KindStretch)),
		WarmupsCompleted:   completionViews(entry.CompletionsOf(models.KindWarmup)),
	}
}

func newProgressViews(entries []models.ProgressEntry) []progressView {
	views := make([]progressView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newProgressView(entry))
	}
	return views
}

func completionViews(items []models.Completion) []fiber.Map {
	views := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		views = append(views, completionView(item))
	}
	return views
}

// completionView keys the external id by kind (workoutId, habitId, ...).
func completionView(item models.Completion) fiber.Map {
	view := fiber.Map{
		string(item.Kind) + "Id": item.ExternalID,
		"title":                  item.Title,
		"completedAt":            item.RecordedAt.UTC().Format(time.RFC3339),
	}
	if item.Kind.Timed() {
		if item.Duration != nil {
			view["duration"] = *item.Duration
		}
		view["caloriesBurned"] = item.CaloriesBurned
	}
	if item.Actual != nil {
		view["actual"] = *item.Actual
	}
	return view
}

type dailyStatsView struct {
	services.DailyStats
	Habits []fiber.Map `json:"habits"`
}

type statsView struct {
	Date      string                           `json:"date"`
	WeekStart string                           `json:"weekStart"`
	Today     dailyStatsView                   `json:"today"`
	Streak    services.StreakStats             `json:"streak"`
	Weekly    map[string]services.WeeklyBucket `json:"weekly"`
}

func newStatsView(stats services.ProgressStats) statsView {
	return statsView{
		Date:      services.FormatDay(stats.Day),
		WeekStart: services.FormatDay(stats.WeekStart),
		Today: dailyStatsView{
			DailyStats: stats.Today,
			Habits:     completionViews(stats.Today.Habits),
		},
		Streak: stats.Streak,
		Weekly: stats.Weekly,
	}
}
