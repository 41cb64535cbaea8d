package models

import "time"

// Answer represents a reply to a question. UserID is an opaque caller-supplied
// UUID; there is no local user table behind it.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"index;not null" json:"question_id"`
	UserID     string    `gorm:"size:36;index;not null" json:"user_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
