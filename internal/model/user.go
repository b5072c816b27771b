package model

import (
	"balance_game_backend/internal/game"

	"gorm.io/gorm"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// swagger:model User
type User struct {
	ID       string   `gorm:"primaryKey;type:varchar(36)" json:"userId"`
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;not null;default:'student'" json:"role"`

	XP              int     `gorm:"not null;default:0" json:"xp"`
	Level           int     `gorm:"not null;default:1" json:"level"`
	Accuracy        float64 `gorm:"not null;default:0" json:"accuracy"`
	TotalAttempts   int     `gorm:"not null;default:0" json:"totalAttempts"`
	CorrectAttempts int     `gorm:"not null;default:0" json:"correctAttempts"`

	Timestamps
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = GenerateUUID()
	}
	if u.Level < 1 {
		u.Level = 1
	}
	if u.Role == "" {
		u.Role = Student
	}
	return nil
}

func (u *User) Progress() game.Progress {
	return game.Progress{
		XP:              u.XP,
		Level:           u.Level,
		Accuracy:        u.Accuracy,
		TotalAttempts:   u.TotalAttempts,
		CorrectAttempts: u.CorrectAttempts,
	}
}

func (u *User) SetProgress(p game.Progress) {
	u.XP = p.XP
	u.Level = p.Level
	u.Accuracy = p.Accuracy
	u.TotalAttempts = p.TotalAttempts
	u.CorrectAttempts = p.CorrectAttempts
}

// ProgressView is the progress summary exposed to the player and teachers.
// swagger:model ProgressView
type ProgressView struct {
	UserID   string   `json:"userId"`
	Name     string   `json:"name"`
	Level    int      `json:"level"`
	XP       int      `json:"xp"`
	Accuracy float64  `json:"accuracy"`
	Role     UserRole `json:"role"`
}

func (u *User) ProgressView() ProgressView {
	return ProgressView{
		UserID:   u.ID,
		Name:     u.Name,
		Level:    u.Level,
		XP:       u.XP,
		Accuracy: u.Accuracy,
		Role:     u.Role,
	}
}
