package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type profilePictureInput struct {
	ProfilePicture string `json:"profilePicture"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type stepsInput struct {
	Steps *int64 `json:"steps"`
	Date  string `json:"date"`
}

type completionPayload struct {
	WorkoutID      string          `json:"workoutId"`
	HabitID        string          `json:"habitId"`
	StretchID      string          `json:"stretchId"`
	WarmupID       string          `json:"warmupId"`
	Title          string          `json:"title"`
	Duration       *flexibleNumber `json:"duration"`
	CaloriesBurned *flexibleNumber `json:"caloriesBurned"`
	Actual         *flexibleNumber `json:"actual"`
	Date           string          `json:"date"`
}

// flexibleNumber accepts a JSON number or a numeric string. A string that
// does not parse decodes to NaN so validation can report it.
type flexibleNumber float64

func (number *flexibleNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			parsed = math.NaN()
		}
		*number = flexibleNumber(parsed)
		return nil
	}

	var value float64
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	*number = flexibleNumber(value)
	return nil
}

func (number *flexibleNumber) float() *float64 {
	if number == nil {
		return nil
	}
	value := float64(*number)
	return &value
}
