package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/movewell/internal/models"
	"github.com/terraincognita07/movewell/internal/observability"
)

var (
	ErrProgressLoadFailed  = errors.New("load progress failed")
	ErrProgressWriteFailed = errors.New("write progress failed")
)

const (
	MaxRangeDays    = 366
	MaxDistanceKm   = 10000.0
	stepsMetricKind = "steps"
)

type ProgressRepository interface {
	FindByUserAndDay(userID uint, day time.Time) (models.ProgressEntry, bool, error)
	ListByUserDayRange(userID uint, fromDay time.Time, toDay time.Time) ([]models.ProgressEntry, error)
	AddSteps(userID uint, day time.Time, count int64, now time.Time) (models.ProgressEntry, error)
	AppendCompletion(userID uint, day time.Time, completion models.Completion, dedupFrom *time.Time, now time.Time) (models.ProgressEntry, bool, error)
}

type ActivityRecorder interface {
	RecordActivity(userID uint, kind models.CompletionKind, today time.Time) error
}

// CompletionInput is one workout, habit, stretch or warmup submission.
// Date is optional; an empty value means the current UTC day.
type CompletionInput struct {
	ID             string
	Title          string
	Duration       *float64
	CaloriesBurned *float64
	Actual         *float64
	Date           string
}

type LedgerResult struct {
	Entry      models.ProgressEntry
	Item       models.Completion
	Duplicate  bool
	ResolvedOn time.Time
}

type LedgerService struct {
	progress ProgressRepository
	streaks  ActivityRecorder
}

func NewLedgerService(progress ProgressRepository, streaks ActivityRecorder) *LedgerService {
	return &LedgerService{progress: progress, streaks: streaks}
}

// EntryForDay never creates a row; a day without data yields an unsaved zero entry.
func (service *LedgerService) EntryForDay(userID uint, day time.Time) (models.ProgressEntry, error) {
	day = CanonicalDay(day)
	entry, found, err := service.progress.FindByUserAndDay(userID, day)
	if err != nil {
		return models.ProgressEntry{}, fmt.Errorf("%w: %v", ErrProgressLoadFailed, err)
	}
	if !found {
		return models.ProgressEntry{UserID: userID, Day: day, Completions: []models.Completion{}}, nil
	}
	return entry, nil
}

func (service *LedgerService) Today(userID uint, rawDate string, now time.Time) (models.ProgressEntry, error) {
	day, err := ResolveDay(rawDate, now)
	if err != nil {
		return models.ProgressEntry{}, err
	}
	return service.EntryForDay(userID, day)
}

// Range returns stored entries between the two dates inclusive, newest first.
func (service *LedgerService) Range(userID uint, startRaw string, endRaw string) ([]models.ProgressEntry, error) {
	if strings.TrimSpace(startRaw) == "" || strings.TrimSpace(endRaw) == "" {
		return nil, invalidInput("startDate and endDate are required")
	}
	start, err := ParseDay(startRaw)
	if err != nil {
		return nil, err
	}
	end, err := ParseDay(endRaw)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, invalidInput("endDate must not be before startDate")
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxRangeDays {
		return nil, invalidInput("date range must not exceed %d days", MaxRangeDays)
	}

	entries, err := service.progress.ListByUserDayRange(userID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProgressLoadFailed, err)
	}
	return entries, nil
}

func (service *LedgerService) AddSteps(userID uint, rawDate string, count int64, now time.Time) (models.ProgressEntry, error) {
	if count < 0 {
		return models.ProgressEntry{}, invalidInput("steps must be a non-negative number")
	}
	day, err := ResolveDay(rawDate, now)
	if err != nil {
		return models.ProgressEntry{}, err
	}

	entry, err := service.progress.AddSteps(userID, day, count, now.UTC())
	if err != nil {
		return models.ProgressEntry{}, fmt.Errorf("%w: %v", ErrProgressWriteFailed, err)
	}
	observability.RecordLedgerWrite(stepsMetricKind, false, now)
	return entry, nil
}

func (service *LedgerService) RecordWorkout(userID uint, input CompletionInput, now time.Time) (LedgerResult, error) {
	return service.recordTimed(userID, models.KindWorkout, input, now)
}

func (service *LedgerService) RecordStretch(userID uint, input CompletionInput, now time.Time) (LedgerResult, error) {
	return service.recordTimed(userID, models.KindStretch, input, now)
}

func (service *LedgerService) RecordWarmup(userID uint, input CompletionInput, now time.Time) (LedgerResult, error) {
	return service.recordTimed(userID, models.KindWarmup, input, now)
}

func (service *LedgerService) RecordHabit(userID uint, input CompletionInput, now time.Time) (LedgerResult, error) {
	completion, err := habitCompletion(input)
	if err != nil {
		return LedgerResult{}, err
	}
	day, err := ResolveDay(input.Date, now)
	if err != nil {
		return LedgerResult{}, err
	}
	return service.append(userID, day, completion, nil, now)
}

func (service *LedgerService) recordTimed(userID uint, kind models.CompletionKind, input CompletionInput, now time.Time) (LedgerResult, error) {
	completion, err := timedCompletion(kind, input)
	if err != nil {
		return LedgerResult{}, err
	}
	day, err := ResolveDay(input.Date, now)
	if err != nil {
		return LedgerResult{}, err
	}
	dedupFrom := PreviousDay(day)
	return service.append(userID, day, completion, &dedupFrom, now)
}

func (service *LedgerService) append(userID uint, day time.Time, completion models.Completion, dedupFrom *time.Time, now time.Time) (LedgerResult, error) {
	entry, duplicate, err := service.progress.AppendCompletion(userID, day, completion, dedupFrom, now.UTC())
	if err != nil {
		return LedgerResult{}, fmt.Errorf("%w: %v", ErrProgressWriteFailed, err)
	}
	observability.RecordLedgerWrite(string(completion.Kind), duplicate, now)

	result := LedgerResult{
		Entry:      entry,
		Item:       latestCompletion(entry, completion.Kind, completion.ExternalID),
		Duplicate:  duplicate,
		ResolvedOn: day,
	}
	if duplicate {
		return result, nil
	}

	if service.streaks != nil {
		if err := service.streaks.RecordActivity(userID, completion.Kind, CanonicalDay(now)); err != nil {
			log.Printf("streak update failed for user %d (%s on %s): %v", userID, completion.Kind, FormatDay(day), err)
			observability.RecordStreakUpdateFailure(string(completion.Kind))
		}
	}
	return result, nil
}

func latestCompletion(entry models.ProgressEntry, kind models.CompletionKind, externalID string) models.Completion {
	for index := len(entry.Completions) - 1; index >= 0; index-- {
		item := entry.Completions[index]
		if item.Kind == kind && item.ExternalID == externalID {
			return item
		}
	}
	return models.Completion{}
}

func timedCompletion(kind models.CompletionKind, input CompletionInput) (models.Completion, error) {
	id, title, err := requireIdentity(kind, input)
	if err != nil {
		return models.Completion{}, err
	}
	if input.Duration == nil || !isFinite(*input.Duration) || *input.Duration <= 0 {
		return models.Completion{}, invalidInput("duration must be a positive number of minutes")
	}

	calories := 0.0
	if input.CaloriesBurned != nil {
		if !isFinite(*input.CaloriesBurned) || *input.CaloriesBurned < 0 {
			return models.Completion{}, invalidInput("caloriesBurned must be a non-negative number")
		}
		calories = *input.CaloriesBurned
	}

	duration := *input.Duration
	return models.Completion{
		Kind:           kind,
		ExternalID:     id,
		Title:          title,
		Duration:       &duration,
		CaloriesBurned: calories,
	}, nil
}

func habitCompletion(input CompletionInput) (models.Completion, error) {
	id, title, err := requireIdentity(models.KindHabit, input)
	if err != nil {
		return models.Completion{}, err
	}

	completion := models.Completion{
		Kind:       models.KindHabit,
		ExternalID: id,
		Title:      title,
	}

	if IsDistanceHabit(title) {
		switch {
		case input.Actual == nil || !isFinite(*input.Actual):
			return models.Completion{}, invalidInput("Walking and Running habits require a valid distance value (km)")
		case *input.Actual <= 0:
			return models.Completion{}, invalidInput("Distance must be greater than 0")
		case *input.Actual > MaxDistanceKm:
			return models.Completion{}, invalidInput("Distance value is too large (max 10000 km)")
		}
	}

	if input.Actual != nil && isFinite(*input.Actual) {
		actual := *input.Actual
		completion.Actual = &actual
	}
	return completion, nil
}

func requireIdentity(kind models.CompletionKind, input CompletionInput) (string, string, error) {
	id := strings.TrimSpace(input.ID)
	title := strings.TrimSpace(input.Title)
	if id == "" || title == "" {
		return "", "", invalidInput("%sId and title are required", kind)
	}
	return id, title, nil
}

// IsDistanceHabit reports whether a habit title names a Walking or Running
// habit, whose actual value is a distance in kilometres.
func IsDistanceHabit(title string) bool {
	return strings.Contains(title, "Walking") || strings.Contains(title, "Running")
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
