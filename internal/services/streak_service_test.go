package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/movewell/internal/models"
)

func streakDay(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceStreakTransitions(t *testing.T) {
	last := streakDay(10)
	base := models.StreakRecord{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: &last}

	tests := []struct {
		name        string
		record      models.StreakRecord
		day         time.Time
		wantCurrent int
		wantLongest int
		wantLast    time.Time
	}{
		{name: "first activity", record: models.StreakRecord{}, day: streakDay(10), wantCurrent: 1, wantLongest: 1, wantLast: streakDay(10)},
		{name: "same day", record: base, day: streakDay(10), wantCurrent: 3, wantLongest: 5, wantLast: streakDay(10)},
		{name: "next day", record: base, day: streakDay(11), wantCurrent: 4, wantLongest: 5, wantLast: streakDay(11)},
		{name: "gap resets", record: base, day: streakDay(12), wantCurrent: 1, wantLongest: 5, wantLast: streakDay(12)},
		{name: "stored date after today restarts", record: base, day: streakDay(8), wantCurrent: 1, wantLongest: 5, wantLast: streakDay(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := AdvanceStreak(tt.record, models.KindWorkout, tt.day)
			require.Equal(t, tt.wantCurrent, next.CurrentStreak)
			require.Equal(t, tt.wantLongest, next.LongestStreak)
			require.NotNil(t, next.LastActivityDate)
			require.True(t, next.LastActivityDate.Equal(tt.wantLast), "last activity %s", next.LastActivityDate)
			require.Equal(t, tt.record.TotalWorkoutsCompleted+1, next.TotalWorkoutsCompleted)
		})
	}
}

func TestAdvanceStreakGrowsLongest(t *testing.T) {
	last := streakDay(10)
	next := AdvanceStreak(models.StreakRecord{CurrentStreak: 5, LongestStreak: 5, LastActivityDate: &last}, models.KindHabit, streakDay(11))

	require.Equal(t, 6, next.CurrentStreak)
	require.Equal(t, 6, next.LongestStreak)
	require.EqualValues(t, 1, next.TotalHabitsCompleted)
	require.Zero(t, next.TotalWorkoutsCompleted)
}

func TestStreakServiceConsecutiveDaysAndReset(t *testing.T) {
	repo := newStreakRepositoryStub()
	service := NewStreakService(repo)

	require.NoError(t, service.RecordActivity(1, models.KindWorkout, streakDay(1)))
	require.NoError(t, service.RecordActivity(1, models.KindStretch, streakDay(2)))

	record, err := service.Get(1)
	require.NoError(t, err)
	require.Equal(t, 2, record.CurrentStreak)
	require.Equal(t, 2, record.LongestStreak)
	require.EqualValues(t, 2, record.TotalWorkoutsCompleted)

	require.NoError(t, service.RecordActivity(1, models.KindHabit, streakDay(4)))
	record, err = service.Get(1)
	require.NoError(t, err)
	require.Equal(t, 1, record.CurrentStreak)
	require.Equal(t, 2, record.LongestStreak, "longest streak must never decrease")
	require.EqualValues(t, 1, record.TotalHabitsCompleted)
}

func TestStreakServiceRetriesStaleVersions(t *testing.T) {
	repo := newStreakRepositoryStub()
	service := NewStreakService(repo)
	require.NoError(t, service.RecordActivity(1, models.KindWorkout, streakDay(1)))

	repo.staleWrites = 2
	require.NoError(t, service.RecordActivity(1, models.KindWorkout, streakDay(2)))
	require.Equal(t, 3, repo.updateCalls)

	record, err := service.Get(1)
	require.NoError(t, err)
	require.Equal(t, 2, record.CurrentStreak)
}

func TestStreakServiceGivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := newStreakRepositoryStub()
	service := NewStreakService(repo)
	require.NoError(t, service.RecordActivity(1, models.KindWorkout, streakDay(1)))

	repo.staleWrites = streakUpdateAttempts
	err := service.RecordActivity(1, models.KindWorkout, streakDay(2))
	require.ErrorIs(t, err, ErrStreakConflict)
	require.Equal(t, streakUpdateAttempts, repo.updateCalls)
}

func TestStreakServiceRetriesLostCreateRace(t *testing.T) {
	repo := newStreakRepositoryStub()
	repo.createRaces = 1
	service := NewStreakService(repo)

	require.NoError(t, service.RecordActivity(1, models.KindHabit, streakDay(3)))
	require.Equal(t, 1, repo.createCalls)
	require.Equal(t, 1, repo.updateCalls)

	record, err := service.Get(1)
	require.NoError(t, err)
	require.Equal(t, 1, record.CurrentStreak)
	require.EqualValues(t, 1, record.TotalHabitsCompleted)
}

func TestStreakServiceGetReturnsZeroRecordAndWrapsErrors(t *testing.T) {
	repo := newStreakRepositoryStub()
	service := NewStreakService(repo)

	record, err := service.Get(9)
	require.NoError(t, err)
	require.Equal(t, uint(9), record.UserID)
	require.Zero(t, record.CurrentStreak)
	require.Nil(t, record.LastActivityDate)

	repo.findErr = errors.New("locked")
	_, err = service.Get(9)
	require.ErrorIs(t, err, ErrStreakLoadFailed)
}

func TestStreakServiceRecoversFromFutureLastActivity(t *testing.T) {
	repo := newStreakRepositoryStub()
	service := NewStreakService(repo)

	future := time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC)
	repo.records[1] = models.StreakRecord{ID: 1, UserID: 1, CurrentStreak: 1, LongestStreak: 1, LastActivityDate: &future, Version: 1}

	for day := 10; day <= 12; day++ {
		require.NoError(t, service.RecordActivity(1, models.KindWorkout, streakDay(day)))
	}

	record, err := service.Get(1)
	require.NoError(t, err)
	require.Equal(t, 3, record.CurrentStreak)
	require.True(t, record.LastActivityDate.Equal(streakDay(12)), "last activity %s", record.LastActivityDate)
}
