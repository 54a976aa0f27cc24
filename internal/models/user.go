package models

import "time"

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	ProfilePicture     string    `gorm:"not null;default:''" json:"profilePicture,omitempty"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"mustChangePassword,omitempty"`
	CreatedAt          time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
