package model

import "time"

// User represents a registered account.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"size:100;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Favorite marks a track liked by a user.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId" gorm:"uniqueIndex:uq_favorites_user_track"`
	TrackID   int64     `json:"trackId" gorm:"uniqueIndex:uq_favorites_user_track"`
	CreatedAt time.Time `json:"createdAt"`
}
