package model

import "time"

type ContactSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id,omitempty"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Message   string    `gorm:"size:255;not null" json:"message"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
