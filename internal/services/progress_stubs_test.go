package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/movewell/internal/models"
	"gorm.io/gorm"
)

type progressRepositoryStub struct {
	entries          map[string]*models.ProgressEntry
	nextEntryID      uint
	nextCompletionID uint
	writeErr         error
	findErr          error
}

func newProgressRepositoryStub() *progressRepositoryStub {
	return &progressRepositoryStub{
		entries:          make(map[string]*models.ProgressEntry),
		nextEntryID:      1,
		nextCompletionID: 1,
	}
}

func (stub *progressRepositoryStub) key(userID uint, day time.Time) string {
	return fmt.Sprintf("%d|%s", userID, day.Format(DayLayout))
}

func (stub *progressRepositoryStub) FindByUserAndDay(userID uint, day time.Time) (models.ProgressEntry, bool, error) {
	if stub.findErr != nil {
		return models.ProgressEntry{}, false, stub.findErr
	}
	entry, ok := stub.entries[stub.key(userID, day)]
	if !ok {
		return models.ProgressEntry{}, false, nil
	}
	return copyEntry(*entry), true, nil
}

func (stub *progressRepositoryStub) ListByUserDayRange(userID uint, fromDay time.Time, toDay time.Time) ([]models.ProgressEntry, error) {
	if stub.findErr != nil {
		return nil, stub.findErr
	}
	entries := make([]models.ProgressEntry, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID || entry.Day.Before(fromDay) || !entry.Day.Before(toDay) {
			continue
		}
		entries = append(entries, copyEntry(*entry))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Day.After(entries[j].Day)
	})
	return entries, nil
}

func (stub *progressRepositoryStub) ensure(userID uint, day time.Time) *models.ProgressEntry {
	key := stub.key(userID, day)
	entry, ok := stub.entries[key]
	if !ok {
		entry = &models.ProgressEntry{ID: stub.nextEntryID, UserID: userID, Day: day}
		stub.nextEntryID++
		stub.entries[key] = entry
	}
	return entry
}

func (stub *progressRepositoryStub) AddSteps(userID uint, day time.Time, count int64, now time.Time) (models.ProgressEntry, error) {
	if stub.writeErr != nil {
		return models.ProgressEntry{}, stub.writeErr
	}
	entry := stub.ensure(userID, day)
	entry.Steps += count
	return copyEntry(*entry), nil
}

func (stub *progressRepositoryStub) AppendCompletion(userID uint, day time.Time, completion models.Completion, dedupFrom *time.Time, now time.Time) (models.ProgressEntry, bool, error) {
	if stub.writeErr != nil {
		return models.ProgressEntry{}, false, stub.writeErr
	}
	if dedupFrom != nil {
		for cursor := day; !cursor.Before(*dedupFrom); cursor = cursor.AddDate(0, 0, -1) {
			entry, ok := stub.entries[stub.key(userID, cursor)]
			if !ok {
				continue
			}
			for _, existing := range entry.Completions {
				if existing.Kind == completion.Kind && existing.ExternalID == completion.ExternalID {
					return copyEntry(*entry), true, nil
				}
			}
		}
	}

	entry := stub.ensure(userID, day)
	completion.ID = stub.nextCompletionID
	stub.nextCompletionID++
	completion.EntryID = entry.ID
	completion.UserID = userID
	completion.Day = day
	completion.RecordedAt = now
	entry.Completions = append(entry.Completions, completion)
	if completion.Duration != nil {
		entry.MinutesExercised += *completion.Duration
	}
	entry.CaloriesBurned += completion.CaloriesBurned
	return copyEntry(*entry), false, nil
}

func copyEntry(entry models.ProgressEntry) models.ProgressEntry {
	entry.Completions = append([]models.Completion(nil), entry.Completions...)
	return entry
}

type streakRepositoryStub struct {
	records     map[uint]models.StreakRecord
	nextID      uint
	findErr     error
	staleWrites int
	createRaces int
	updateCalls int
	createCalls int
}

func newStreakRepositoryStub() *streakRepositoryStub {
	return &streakRepositoryStub{records: make(map[uint]models.StreakRecord), nextID: 1}
}

func (stub *streakRepositoryStub) FindByUserID(userID uint) (models.StreakRecord, bool, error) {
	if stub.findErr != nil {
		return models.StreakRecord{}, false, stub.findErr
	}
	record, ok := stub.records[userID]
	return record, ok, nil
}

func (stub *streakRepositoryStub) Create(record *models.StreakRecord) error {
	stub.createCalls++
	if stub.createRaces > 0 {
		stub.createRaces--
		stub.records[record.UserID] = models.StreakRecord{ID: stub.nextID, UserID: record.UserID}
		stub.nextID++
		return gorm.ErrDuplicatedKey
	}
	if _, exists := stub.records[record.UserID]; exists {
		return gorm.ErrDuplicatedKey
	}
	record.ID = stub.nextID
	stub.nextID++
	stub.records[record.UserID] = *record
	return nil
}

func (stub *streakRepositoryStub) UpdateIfVersion(record models.StreakRecord) (bool, error) {
	stub.updateCalls++
	stored, ok := stub.records[record.UserID]
	if !ok {
		return false, errors.New("missing streak record")
	}
	if stub.staleWrites > 0 {
		stub.staleWrites--
		stored.Version++
		stub.records[record.UserID] = stored
		return false, nil
	}
	if stored.Version != record.Version {
		return false, nil
	}
	record.Version++
	stub.records[record.UserID] = record
	return true, nil
}

type activityRecorderStub struct {
	calls []recordedActivity
	err   error
}

type recordedActivity struct {
	userID uint
	kind   models.CompletionKind
	day    time.Time
}

func (stub *activityRecorderStub) RecordActivity(userID uint, kind models.CompletionKind, day time.Time) error {
	stub.calls = append(stub.calls, recordedActivity{userID: userID, kind: kind, day: day})
	return stub.err
}
