package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"unique_index;not null" json:"username"`
	Password  string    `gorm:"column:password_digest;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Video struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `gorm:"not null" json:"url"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	User        User      `gorm:"foreignkey:UserID;association_autoupdate:false;association_autocreate:false" json:"user"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VideoInput is the user-editable part of a Video. Ownership is never part of it.
type VideoInput struct {
	Title       string `form:"title" json:"title"`
	URL         string `form:"url" json:"url"`
	Description string `form:"description" json:"description"`
}

// Apply copies the editable fields onto v.
func (in VideoInput) Apply(v *Video) {
	v.Title = in.Title
	v.URL = in.URL
	v.Description = in.Description
}

func (v *Video) Input() VideoInput {
	return VideoInput{Title: v.Title, URL: v.URL, Description: v.Description}
}
